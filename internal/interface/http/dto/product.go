package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/baitboost/catalog/internal/domain/product"
)

// ProductRequest 创建/修改商品请求
// 金额、长度、重量使用字符串或数字形式的十进制数（如"129.90"）
// 规格字段与路由对应：/reels只接受reel，/rods只接受rod，/lures只接受lure
type ProductRequest struct {
	Kind             string           `json:"kind" binding:"omitempty,oneof=generic reel rod lure" example:"rod"`
	Name             string           `json:"name" binding:"required,max=255" example:"Shimano Zodias 270ML"`
	Slug             string           `json:"slug" binding:"omitempty,max=280"`
	SKU              string           `json:"sku" binding:"omitempty,max=50"`
	CategoryID       uint             `json:"category_id" binding:"required" example:"3"`
	BrandID          uint             `json:"brand_id" binding:"required" example:"1"`
	ShortDescription string           `json:"short_description" binding:"required" example:"Canna da spinning in carbonio"`
	FullDescription  string           `json:"full_description"`
	MainImageURL     string           `json:"main_image_url" binding:"omitempty,max=500"`
	Price            decimal.Decimal  `json:"price" swaggertype:"string" example:"249.90"`
	DiscountPrice    *decimal.Decimal `json:"discount_price" swaggertype:"string" example:"219.90"`
	Quantity         int              `json:"quantity" binding:"min=0" example:"5"`
	Weight           *decimal.Decimal `json:"weight" swaggertype:"string" example:"145"`
	Featured         bool             `json:"featured"`
	ForSale          *bool            `json:"for_sale"` // 默认true
	IsNew            bool             `json:"is_new"`
	Used             bool             `json:"used"`
	Condition        string           `json:"condition" binding:"max=50"`
	MetaTitle        string           `json:"meta_title" binding:"max=100"`
	MetaDescription  string           `json:"meta_description"`
	MetaKeywords     string           `json:"meta_keywords" binding:"max=255"`
	Images           []ImageRequest   `json:"images" binding:"omitempty,dive"`

	Reel *ReelSpecRequest `json:"reel"`
	Rod  *RodSpecRequest  `json:"rod"`
	Lure *LureSpecRequest `json:"lure"`
}

// ImageRequest 商品图片
type ImageRequest struct {
	URL       string `json:"url" binding:"required,max=500"`
	AltText   string `json:"alt_text" binding:"max=200"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order" binding:"min=0"`
}

// ReelSpecRequest 渔轮规格
type ReelSpecRequest struct {
	ReelType     string           `json:"reel_type" binding:"required" example:"SPINNING"`
	BodyMaterial string           `json:"body_material" binding:"max=100"`
	Bearings     *int             `json:"bearings" example:"9"`
	GearRatio    string           `json:"gear_ratio" binding:"max=20" example:"6.2:1"`
	ReelWeight   *decimal.Decimal `json:"reel_weight" swaggertype:"string" example:"225"`
	LineCapacity string           `json:"line_capacity" binding:"max=100" example:"0.25mm/150m"`
	MaxDrag      *decimal.Decimal `json:"max_drag" swaggertype:"string" example:"9"`
	DragSystem   string           `json:"drag_system" example:"FRONT"`
	SpareSpool   bool             `json:"spare_spool"`
}

// RodSpecRequest 鱼竿规格
type RodSpecRequest struct {
	RodType       string           `json:"rod_type" binding:"required" example:"SPINNING"`
	Length        decimal.Decimal  `json:"length" swaggertype:"string" example:"2.70"`
	Sections      *int             `json:"sections" example:"2"`
	CastingWeight *string          `json:"casting_weight" binding:"omitempty,max=50" example:"10-30g"`
	Action        string           `json:"action" example:"MEDIUM"`
	Material      string           `json:"material" binding:"max=100" example:"Carbonio"`
	ClosedLength  *decimal.Decimal `json:"closed_length" swaggertype:"string" example:"139"`
	Guides        *int             `json:"guides" example:"8"`
	ReelSeat      string           `json:"reel_seat" binding:"max=100"`
}

// LureSpecRequest 饵料规格
type LureSpecRequest struct {
	LureType           string           `json:"lure_type" binding:"required" example:"ARTIFICIAL"`
	ArtificialCategory string           `json:"artificial_category" example:"CRANKBAIT"`
	LureLength         *decimal.Decimal `json:"lure_length" swaggertype:"string" example:"9"`
	LureWeight         *decimal.Decimal `json:"lure_weight" swaggertype:"string" example:"14"`
	WorkingDepth       *string          `json:"working_depth" binding:"omitempty,max=50" example:"0-1m"`
	Color              string           `json:"color" binding:"max=50"`
	Floating           bool             `json:"floating"`
	Rattling           bool             `json:"rattling"`
	Hooks              *int             `json:"hooks"`
	TargetSpecies      string           `json:"target_species" binding:"max=200" example:"Spigola"`
}

// ToInput 转换为领域输入，枚举值统一转为大写
func (r *ProductRequest) ToInput() product.Input {
	forSale := true
	if r.ForSale != nil {
		forSale = *r.ForSale
	}

	in := product.Input{
		Kind:             product.Kind(strings.ToLower(r.Kind)),
		Name:             strings.TrimSpace(r.Name),
		Slug:             strings.TrimSpace(r.Slug),
		SKU:              strings.TrimSpace(r.SKU),
		CategoryID:       r.CategoryID,
		BrandID:          r.BrandID,
		ShortDescription: r.ShortDescription,
		FullDescription:  r.FullDescription,
		MainImageURL:     r.MainImageURL,
		Price:            r.Price,
		DiscountPrice:    r.DiscountPrice,
		Quantity:         r.Quantity,
		Weight:           r.Weight,
		Featured:         r.Featured,
		ForSale:          forSale,
		IsNew:            r.IsNew,
		Used:             r.Used,
		Condition:        r.Condition,
		MetaTitle:        r.MetaTitle,
		MetaDescription:  r.MetaDescription,
		MetaKeywords:     r.MetaKeywords,
	}

	for _, img := range r.Images {
		in.Images = append(in.Images, product.Image{
			URL:       strings.TrimSpace(img.URL),
			AltText:   img.AltText,
			IsPrimary: img.IsPrimary,
			SortOrder: img.SortOrder,
		})
	}

	if s := r.Reel; s != nil {
		in.Reel = &product.ReelSpec{
			ReelType:     product.ReelType(upper(s.ReelType)),
			BodyMaterial: s.BodyMaterial,
			Bearings:     s.Bearings,
			GearRatio:    s.GearRatio,
			ReelWeight:   s.ReelWeight,
			LineCapacity: s.LineCapacity,
			MaxDrag:      s.MaxDrag,
			DragSystem:   product.DragSystem(upper(s.DragSystem)),
			SpareSpool:   s.SpareSpool,
		}
	}
	if s := r.Rod; s != nil {
		in.Rod = &product.RodSpec{
			RodType:       product.RodType(upper(s.RodType)),
			Length:        s.Length,
			Sections:      s.Sections,
			CastingWeight: trimPtr(s.CastingWeight),
			Action:        product.RodAction(upper(s.Action)),
			Material:      s.Material,
			ClosedLength:  s.ClosedLength,
			Guides:        s.Guides,
			ReelSeat:      s.ReelSeat,
		}
	}
	if s := r.Lure; s != nil {
		in.Lure = &product.LureSpec{
			LureType:           product.LureType(upper(s.LureType)),
			ArtificialCategory: product.ArtificialCategory(upper(s.ArtificialCategory)),
			LureLength:         s.LureLength,
			LureWeight:         s.LureWeight,
			WorkingDepth:       trimPtr(s.WorkingDepth),
			Color:              s.Color,
			Floating:           s.Floating,
			Rattling:           s.Rattling,
			Hooks:              s.Hooks,
			TargetSpecies:      s.TargetSpecies,
		}
	}
	return in
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// trimPtr 去掉首尾空白，空串视为未填写
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
