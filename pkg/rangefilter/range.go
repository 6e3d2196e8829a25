// Package rangefilter 解析"最小值-最大值"形式的文本区间属性（如鱼竿抛投重量"10-30g"、
// 拟饵泳层"0-1m"），并在内存中按阈值对候选集做二次筛选。
//
// 使用场景：
//
//	结构化条件（分类、品牌、价格、布尔标记）先下推到数据库，
//	得到的候选集再交给rangefilter按文本区间收窄。
//
// 解析失败的记录只会被排除在结果之外，不会作为错误返回给调用方。
package rangefilter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnparseable 区间文本无法解析（缺失、格式错误、非数字、下限大于上限）
	ErrUnparseable = errors.New("rangefilter: unparseable range")

	// ErrInvalidThreshold 查询阈值非法（调用方错误）
	ErrInvalidThreshold = errors.New("rangefilter: invalid threshold")
)

// Reason 解析失败原因
type Reason string

const (
	ReasonAbsent    Reason = "absent"    // 字段为空指针
	ReasonEmpty     Reason = "empty"     // 空字符串
	ReasonUnit      Reason = "unit"      // 单位未知或前后不一致
	ReasonSeparator Reason = "separator" // 没有或多于一个"-"
	ReasonNumber    Reason = "number"    // 边界不是非负数字
	ReasonOrder     Reason = "order"     // 下限大于上限
)

// UnparseableError 解析失败详情
// errors.Is(err, ErrUnparseable) 恒为true
type UnparseableError struct {
	Raw    string
	Reason Reason
}

func (e *UnparseableError) Error() string {
	return fmt.Sprintf("rangefilter: cannot parse %q (%s)", e.Raw, e.Reason)
}

// Is 支持errors.Is(err, ErrUnparseable)
func (e *UnparseableError) Is(target error) bool {
	return target == ErrUnparseable
}

// Value 解析后的闭区间[Low, High]
// 只能通过Parser构造，保证 0 <= Low <= High
type Value struct {
	low  decimal.Decimal
	high decimal.Decimal
}

// Low 区间下限
func (v Value) Low() decimal.Decimal { return v.low }

// High 区间上限
func (v Value) High() decimal.Decimal { return v.high }

// Overlaps 判断与[low, high]是否相交（含边界）
func (v Value) Overlaps(low, high decimal.Decimal) bool {
	return v.low.LessThanOrEqual(high) && v.high.GreaterThanOrEqual(low)
}

func (v Value) String() string {
	return v.low.String() + "-" + v.high.String()
}

// Parser 区间文本解析器
// units为允许的单位后缀（大小写不敏感），为空时只接受纯数字
type Parser struct {
	units []string
}

// NewParser 创建解析器
//
//	NewParser("g").Parse("10-30G")   // [10, 30]
//	NewParser("m").Parse("0-1m")     // [0, 1]
func NewParser(units ...string) Parser {
	lower := make([]string, 0, len(units))
	for _, u := range units {
		if u = strings.ToLower(strings.TrimSpace(u)); u != "" {
			lower = append(lower, u)
		}
	}
	return Parser{units: lower}
}

// ParsePtr 解析可能缺失的区间文本
func (p Parser) ParsePtr(raw *string) (Value, error) {
	if raw == nil {
		return Value{}, &UnparseableError{Reason: ReasonAbsent}
	}
	return p.Parse(*raw)
}

// Parse 解析"<min><unit>-<max><unit>"格式的区间文本
// 规则：
// 1. 单位只能出现在上限之后（"10-30g"），或上下限都带同一单位（"10g-30g"）
// 2. 必须有且只有一个"-"
// 3. 上下限都必须是非负数字，","视为小数点
// 4. 下限不能大于上限（不做交换）
func (p Parser) Parse(raw string) (Value, error) {
	fail := func(reason Reason) (Value, error) {
		return Value{}, &UnparseableError{Raw: raw, Reason: reason}
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return fail(ReasonEmpty)
	}

	lowText, highText, found := strings.Cut(s, "-")
	if !found || strings.Contains(highText, "-") {
		return fail(ReasonSeparator)
	}

	lowNum, lowUnit := splitUnit(lowText)
	highNum, highUnit := splitUnit(highText)

	switch {
	case lowUnit == "" && highUnit == "":
	case lowUnit == "" || strings.EqualFold(lowUnit, highUnit):
		if !p.knows(highUnit) {
			return fail(ReasonUnit)
		}
	default:
		return fail(ReasonUnit)
	}

	low, ok := parseNumber(lowNum, false)
	if !ok {
		return fail(ReasonNumber)
	}
	high, ok := parseNumber(highNum, false)
	if !ok {
		return fail(ReasonNumber)
	}

	if low.GreaterThan(high) {
		return fail(ReasonOrder)
	}

	return Value{low: low, high: high}, nil
}

// ParseThreshold 解析查询阈值（如"15g"、"12"、"0,5m"）
// 阈值可以为0或负数；单位必须是units之一
func ParseThreshold(raw string, units ...string) (decimal.Decimal, error) {
	num, unit := splitUnit(raw)
	if unit != "" && !NewParser(units...).knows(unit) {
		return decimal.Zero, fmt.Errorf("%w: unknown unit in %q", ErrInvalidThreshold, raw)
	}

	d, ok := parseNumber(num, true)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidThreshold, raw)
	}
	return d, nil
}

func (p Parser) knows(unit string) bool {
	unit = strings.ToLower(unit)
	for _, u := range p.units {
		if u == unit {
			return true
		}
	}
	return false
}

// splitUnit 拆分数字与结尾的ASCII字母单位
func splitUnit(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && isASCIILetter(s[i-1]) {
		i--
	}
	return strings.TrimSpace(s[:i]), s[i:]
}

// parseNumber 只接受十进制数字和一个小数点，拒绝指数、空白和符号
func parseNumber(s string, signed bool) (decimal.Decimal, bool) {
	s = strings.Replace(s, ",", ".", 1)
	if signed && strings.HasPrefix(s, "-") {
		d, ok := parseNumber(s[1:], false)
		return d.Neg(), ok
	}

	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return decimal.Zero, false
		}
	}
	if digits == 0 || dots > 1 {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
