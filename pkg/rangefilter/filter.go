package rangefilter

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Filter 按文本区间属性筛选任意类型的候选集
// Filter不持有可变状态，可被多个goroutine并发使用
type Filter[T any] struct {
	parser Parser
	attr   func(T) *string
}

// Entry 解析成功的候选项及其区间
type Entry[T any] struct {
	Item  T
	Range Value
}

// Query 区间查询条件，Min/Max为nil表示不限制
type Query struct {
	Min *decimal.Decimal // 区间下限 >= Min
	Max *decimal.Decimal // 区间上限 <= Max
}

// IsZero 是否没有任何条件
func (q Query) IsZero() bool {
	return q.Min == nil && q.Max == nil
}

// New 创建过滤器
// attr从候选项中取出区间文本（可为nil），units为允许的单位后缀
func New[T any](attr func(T) *string, units ...string) *Filter[T] {
	return &Filter[T]{
		parser: NewParser(units...),
		attr:   attr,
	}
}

// Parser 返回过滤器使用的解析器
func (f *Filter[T]) Parser() Parser {
	return f.parser
}

// Partition 解析所有候选项，返回解析成功的条目和被跳过的数量
func (f *Filter[T]) Partition(items []T) ([]Entry[T], int) {
	entries := make([]Entry[T], 0, len(items))
	skipped := 0
	for _, item := range items {
		v, err := f.parser.ParsePtr(f.attr(item))
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, Entry[T]{Item: item, Range: v})
	}
	return entries, skipped
}

// Minimum 保留区间下限 >= threshold 的候选项
func (f *Filter[T]) Minimum(items []T, threshold decimal.Decimal) []T {
	return f.keep(items, func(v Value) bool {
		return v.low.GreaterThanOrEqual(threshold)
	})
}

// Maximum 保留区间上限 <= threshold 的候选项
func (f *Filter[T]) Maximum(items []T, threshold decimal.Decimal) []T {
	return f.keep(items, func(v Value) bool {
		return v.high.LessThanOrEqual(threshold)
	})
}

// Overlap 保留与[low, high]相交的候选项
// low > high 视为调用方错误
func (f *Filter[T]) Overlap(items []T, low, high decimal.Decimal) ([]T, error) {
	if low.GreaterThan(high) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidThreshold, low, high)
	}
	return f.keep(items, func(v Value) bool {
		return v.Overlaps(low, high)
	}), nil
}

// Match 同时应用Min、Max条件
// 条件为空时原样返回（包括无法解析的记录）
func (f *Filter[T]) Match(items []T, q Query) []T {
	if q.IsZero() {
		return items
	}
	return f.keep(items, q.accepts)
}

// MatchEntries 对Partition的结果应用查询条件，不再重复解析
// 条件为空时返回全部条目的候选项
func (f *Filter[T]) MatchEntries(entries []Entry[T], q Query) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if q.accepts(e.Range) {
			out = append(out, e.Item)
		}
	}
	return out
}

func (q Query) accepts(v Value) bool {
	if q.Min != nil && v.low.LessThan(*q.Min) {
		return false
	}
	if q.Max != nil && v.high.GreaterThan(*q.Max) {
		return false
	}
	return true
}

// keep 按谓词筛选，保持输入顺序，无法解析的记录一律排除
func (f *Filter[T]) keep(items []T, pred func(Value) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := f.parser.ParsePtr(f.attr(item))
		if err != nil {
			continue
		}
		if pred(v) {
			out = append(out, item)
		}
	}
	return out
}
