package product

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Product 商品(聚合根)
// 渔轮、鱼竿、饵料是带有一对一规格的商品，Kind决定哪个规格字段有值
type Product struct {
	ID         uint
	Kind       Kind
	Name       string
	Slug       string
	SKU        string
	CategoryID uint
	BrandID    uint

	// 只读关联，查询时填充
	Category *Ref
	Brand    *Ref

	ShortDescription string
	FullDescription  string
	MainImageURL     string

	Price         decimal.Decimal  // 两位小数
	DiscountPrice *decimal.Decimal // nil表示没有折扣价
	Quantity      int
	Weight        *decimal.Decimal // 克

	Featured bool
	ForSale  bool
	IsNew    bool
	Used     bool

	Condition       string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string

	Images []Image

	Reel *ReelSpec
	Rod  *RodSpec
	Lure *LureSpec

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref 关联的分类或品牌
type Ref struct {
	ID   uint
	Name string
	Slug string
}

// Image 商品图片，按SortOrder排序
type Image struct {
	ID        uint
	URL       string
	AltText   string
	IsPrimary bool
	SortOrder int
}

// ReelSpec 渔轮规格
type ReelSpec struct {
	ReelType     ReelType
	BodyMaterial string
	Bearings     *int
	GearRatio    string // 如"6.2:1"
	ReelWeight   *decimal.Decimal
	LineCapacity string // 如"0.35mm/150m"
	MaxDrag      *decimal.Decimal
	DragSystem   DragSystem // 空表示未知
	SpareSpool   bool
}

// RodSpec 鱼竿规格
type RodSpec struct {
	RodType       RodType
	Length        decimal.Decimal // 米
	Sections      *int
	CastingWeight *string // 抛投重量，如"10-30g"
	Action        RodAction
	Material      string
	ClosedLength  *decimal.Decimal // 厘米
	Guides        *int
	ReelSeat      string
}

// LureSpec 饵料规格
type LureSpec struct {
	LureType           LureType
	ArtificialCategory ArtificialCategory
	LureLength         *decimal.Decimal // 厘米
	LureWeight         *decimal.Decimal // 克
	WorkingDepth       *string          // 泳层，如"0-1m"或"Superficie"
	Color              string
	Floating           bool
	Rattling           bool
	Hooks              *int
	TargetSpecies      string
}

// InStock 是否有库存
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// OnSale 折扣价存在且低于原价
func (p *Product) OnSale() bool {
	return p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price)
}

// DiscountPercent 折扣百分比，四舍六入五成双
func (p *Product) DiscountPercent() int64 {
	if !p.OnSale() || !p.Price.IsPositive() {
		return 0
	}
	off := p.Price.Sub(*p.DiscountPrice).Div(p.Price).Mul(hundred)
	return off.RoundBank(0).IntPart()
}

// CastingWeight 鱼竿抛投重量，非鱼竿返回nil
func (p *Product) CastingWeight() *string {
	if p.Rod == nil {
		return nil
	}
	return p.Rod.CastingWeight
}

// WorkingDepth 饵料泳层，非饵料返回nil
func (p *Product) WorkingDepth() *string {
	if p.Lure == nil {
		return nil
	}
	return p.Lure.WorkingDepth
}

// Input 创建/更新商品的输入
type Input struct {
	Kind       Kind
	Name       string
	Slug       string
	SKU        string
	CategoryID uint
	BrandID    uint

	ShortDescription string
	FullDescription  string
	MainImageURL     string

	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	Quantity      int
	Weight        *decimal.Decimal

	Featured bool
	ForSale  bool
	IsNew    bool
	Used     bool

	Condition       string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string

	Images []Image

	Reel *ReelSpec
	Rod  *RodSpec
	Lure *LureSpec
}

// Apply 用输入覆盖可编辑字段，slug与SKU由服务层决定
func (p *Product) Apply(in Input) {
	p.Kind = in.Kind
	p.Name = in.Name
	p.CategoryID = in.CategoryID
	p.BrandID = in.BrandID
	p.ShortDescription = in.ShortDescription
	p.FullDescription = in.FullDescription
	p.MainImageURL = in.MainImageURL
	p.Price = in.Price.Round(2)
	p.DiscountPrice = roundPtr(in.DiscountPrice)
	p.Quantity = in.Quantity
	p.Weight = roundPtr(in.Weight)
	p.Featured = in.Featured
	p.ForSale = in.ForSale
	p.IsNew = in.IsNew
	p.Used = in.Used
	p.Condition = in.Condition
	p.MetaTitle = in.MetaTitle
	p.MetaDescription = in.MetaDescription
	p.MetaKeywords = in.MetaKeywords
	p.Images = in.Images
	p.Reel = in.Reel
	p.Rod = in.Rod
	p.Lure = in.Lure
	p.UpdatedAt = time.Now()
}

func roundPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(2)
	return &r
}
