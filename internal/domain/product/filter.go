package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/baitboost/catalog/pkg/errors"
	"github.com/baitboost/catalog/pkg/rangefilter"
)

// DefaultOrdering 默认按创建时间倒序
const DefaultOrdering = "-created_at"

// Filter 商品列表的结构化查询条件，全部下推到数据库
// Page为0表示不分页，返回全部候选
type Filter struct {
	Kind       Kind // 空表示所有类型
	Query      string
	Name       string
	Categories []string // 分类slug
	Brands     []string // 品牌slug
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	OnSale     *bool
	Available  *bool
	New        *bool
	Used       *bool
	Featured   *bool
	Since      *time.Time // 只查此时间之后创建的商品

	Reel *ReelFilter
	Rod  *RodFilter
	Lure *LureFilter

	Ordering string
	Page     int
	PageSize int
}

// ReelFilter 渔轮专属条件
type ReelFilter struct {
	ReelType    ReelType
	BearingsMin *int
	BearingsMax *int
	DragSystem  DragSystem
	SpareSpool  *bool
	WeightMax   *decimal.Decimal
	DragMin     *decimal.Decimal
}

// RodFilter 鱼竿专属条件，抛投重量区间不在此处
type RodFilter struct {
	RodType         RodType
	LengthMin       *decimal.Decimal
	LengthMax       *decimal.Decimal
	Action          RodAction
	Material        string
	ClosedLengthMax *decimal.Decimal
}

// LureFilter 饵料专属条件，泳层区间不在此处
type LureFilter struct {
	LureType           LureType
	ArtificialCategory ArtificialCategory
	LengthMin          *decimal.Decimal
	LengthMax          *decimal.Decimal
	WeightMin          *decimal.Decimal
	WeightMax          *decimal.Decimal
	Depth              string
	Color              string
	Floating           *bool
	Rattling           *bool
	TargetSpecies      string
}

// Unpaged 是否返回全部候选
func (f Filter) Unpaged() bool {
	return f.Page <= 0
}

// 区间属性的单位
const (
	CastingWeightUnit = "g"
	WorkingDepthUnit  = "m"
)

// CastingWeightFilter 按抛投重量筛选鱼竿
var CastingWeightFilter = rangefilter.New((*Product).CastingWeight, CastingWeightUnit)

// WorkingDepthFilter 按泳层筛选饵料
var WorkingDepthFilter = rangefilter.New((*Product).WorkingDepth, WorkingDepthUnit)

var baseOrderings = []string{
	"name", "price", "discount_price", "created_at", "quantity", "brand", "category",
}

var kindOrderings = map[Kind][]string{
	KindReel: {"bearings", "reel_weight", "max_drag"},
	KindRod:  {"length", "closed_length"},
	KindLure: {"lure_length", "lure_weight"},
}

// OrderingFields 指定类型允许的排序字段
func OrderingFields(kind Kind) []string {
	fields := append([]string{}, baseOrderings...)
	return append(fields, kindOrderings[kind]...)
}

// NormalizeOrdering 校验排序参数，空值返回默认排序
// 支持逗号分隔多个字段，"-"前缀表示降序
func NormalizeOrdering(kind Kind, ordering string) (string, error) {
	ordering = strings.TrimSpace(ordering)
	if ordering == "" {
		return DefaultOrdering, nil
	}

	allowed := OrderingFields(kind)
	parts := strings.Split(ordering, ",")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if !contains(allowed, strings.TrimPrefix(part, "-")) {
			return "", apperrors.ErrInvalidParams.WithMessage("不支持的排序字段: " + part)
		}
		parts[i] = part
	}
	return strings.Join(parts, ","), nil
}

// NameCount 分组统计
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Statistics 商品统计
type Statistics struct {
	Total      int64       `json:"total_products"`
	InStock    int64       `json:"in_stock"`
	OutOfStock int64       `json:"out_of_stock"`
	OnSale     int64       `json:"on_sale"`
	ByCategory []NameCount `json:"products_by_category"`
	ByBrand    []NameCount `json:"products_by_brand"`
}
