package product

import (
	"github.com/shopspring/decimal"

	"github.com/baitboost/catalog/internal/application"
	"github.com/baitboost/catalog/internal/domain/product"
)

// ProductView 商品响应DTO
// 列表中省略完整描述、图片和SEO字段
type ProductView struct {
	ID               uint             `json:"id"`
	Kind             string           `json:"kind"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	SKU              string           `json:"sku"`
	Category         *RefView         `json:"category,omitempty"`
	Brand            *RefView         `json:"brand,omitempty"`
	ShortDescription string           `json:"short_description"`
	FullDescription  string           `json:"full_description,omitempty"`
	MainImageURL     string           `json:"main_image_url,omitempty"`
	Price            decimal.Decimal  `json:"price"`
	DiscountPrice    *decimal.Decimal `json:"discount_price"`
	DiscountPercent  int64            `json:"discount_percent"`
	OnSale           bool             `json:"on_sale"`
	Quantity         int              `json:"quantity"`
	InStock          bool             `json:"in_stock"`
	Weight           *decimal.Decimal `json:"weight,omitempty"`
	Featured         bool             `json:"featured"`
	ForSale          bool             `json:"for_sale"`
	IsNew            bool             `json:"is_new"`
	Used             bool             `json:"used"`
	Condition        string           `json:"condition,omitempty"`
	MetaTitle        string           `json:"meta_title,omitempty"`
	MetaDescription  string           `json:"meta_description,omitempty"`
	MetaKeywords     string           `json:"meta_keywords,omitempty"`
	Images           []ImageView      `json:"images,omitempty"`
	Reel             *ReelView        `json:"reel,omitempty"`
	Rod              *RodView         `json:"rod,omitempty"`
	Lure             *LureView        `json:"lure,omitempty"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}

// RefView 分类/品牌摘要
type RefView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ImageView 商品图片
type ImageView struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

// ReelView 渔轮规格
type ReelView struct {
	ReelType     string           `json:"reel_type"`
	BodyMaterial string           `json:"body_material,omitempty"`
	Bearings     *int             `json:"bearings"`
	GearRatio    string           `json:"gear_ratio,omitempty"`
	ReelWeight   *decimal.Decimal `json:"reel_weight"`
	LineCapacity string           `json:"line_capacity,omitempty"`
	MaxDrag      *decimal.Decimal `json:"max_drag"`
	DragSystem   string           `json:"drag_system,omitempty"`
	SpareSpool   bool             `json:"spare_spool"`
}

// RodView 鱼竿规格
type RodView struct {
	RodType       string           `json:"rod_type"`
	Length        decimal.Decimal  `json:"length"`
	Sections      *int             `json:"sections"`
	CastingWeight *string          `json:"casting_weight"`
	Action        string           `json:"action,omitempty"`
	Material      string           `json:"material,omitempty"`
	ClosedLength  *decimal.Decimal `json:"closed_length"`
	Guides        *int             `json:"guides"`
	ReelSeat      string           `json:"reel_seat,omitempty"`
}

// LureView 饵料规格
type LureView struct {
	LureType           string           `json:"lure_type"`
	ArtificialCategory string           `json:"artificial_category,omitempty"`
	LureLength         *decimal.Decimal `json:"lure_length"`
	LureWeight         *decimal.Decimal `json:"lure_weight"`
	WorkingDepth       *string          `json:"working_depth"`
	Color              string           `json:"color,omitempty"`
	Floating           bool             `json:"floating"`
	Rattling           bool             `json:"rattling"`
	Hooks              *int             `json:"hooks"`
	TargetSpecies      string           `json:"target_species,omitempty"`
}

// ToView 领域实体 → 详情DTO
func ToView(p *product.Product) *ProductView {
	v := &ProductView{
		ID:               p.ID,
		Kind:             string(p.Kind),
		Name:             p.Name,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Category:         toRefView(p.Category),
		Brand:            toRefView(p.Brand),
		ShortDescription: p.ShortDescription,
		FullDescription:  p.FullDescription,
		MainImageURL:     p.MainImageURL,
		Price:            p.Price,
		DiscountPrice:    p.DiscountPrice,
		DiscountPercent:  p.DiscountPercent(),
		OnSale:           p.OnSale(),
		Quantity:         p.Quantity,
		InStock:          p.InStock(),
		Weight:           p.Weight,
		Featured:         p.Featured,
		ForSale:          p.ForSale,
		IsNew:            p.IsNew,
		Used:             p.Used,
		Condition:        p.Condition,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		MetaKeywords:     p.MetaKeywords,
		CreatedAt:        p.CreatedAt.Format(application.TimeLayout),
		UpdatedAt:        p.UpdatedAt.Format(application.TimeLayout),
	}

	for _, img := range p.Images {
		v.Images = append(v.Images, ImageView(img))
	}

	if s := p.Reel; s != nil {
		v.Reel = &ReelView{
			ReelType:     string(s.ReelType),
			BodyMaterial: s.BodyMaterial,
			Bearings:     s.Bearings,
			GearRatio:    s.GearRatio,
			ReelWeight:   s.ReelWeight,
			LineCapacity: s.LineCapacity,
			MaxDrag:      s.MaxDrag,
			DragSystem:   string(s.DragSystem),
			SpareSpool:   s.SpareSpool,
		}
	}
	if s := p.Rod; s != nil {
		v.Rod = &RodView{
			RodType:       string(s.RodType),
			Length:        s.Length,
			Sections:      s.Sections,
			CastingWeight: s.CastingWeight,
			Action:        string(s.Action),
			Material:      s.Material,
			ClosedLength:  s.ClosedLength,
			Guides:        s.Guides,
			ReelSeat:      s.ReelSeat,
		}
	}
	if s := p.Lure; s != nil {
		v.Lure = &LureView{
			LureType:           string(s.LureType),
			ArtificialCategory: string(s.ArtificialCategory),
			LureLength:         s.LureLength,
			LureWeight:         s.LureWeight,
			WorkingDepth:       s.WorkingDepth,
			Color:              s.Color,
			Floating:           s.Floating,
			Rattling:           s.Rattling,
			Hooks:              s.Hooks,
			TargetSpecies:      s.TargetSpecies,
		}
	}
	return v
}

// ToListItem 列表项，不含完整描述、图片和SEO字段
func ToListItem(p *product.Product) ProductView {
	v := ToView(p)
	v.FullDescription = ""
	v.Images = nil
	v.MetaTitle, v.MetaDescription, v.MetaKeywords = "", "", ""
	return *v
}

// ToListItems 批量转换
func ToListItems(products []*product.Product) []ProductView {
	list := make([]ProductView, len(products))
	for i, p := range products {
		list[i] = ToListItem(p)
	}
	return list
}

func toRefView(r *product.Ref) *RefView {
	if r == nil {
		return nil
	}
	return &RefView{ID: r.ID, Name: r.Name, Slug: r.Slug}
}
