package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	productapp "github.com/baitboost/catalog/internal/application/product"
	"github.com/baitboost/catalog/internal/domain/product"
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// ProductListQuery 商品列表查询参数
// 通用参数适用于所有商品路由；reel_*/rod_*/lure_*等专属参数只在对应路由生效
// 数值参数按字符串接收，格式错误时返回参数错误而不是静默忽略
type ProductListQuery struct {
	Query      string `form:"query" binding:"omitempty,max=100"`
	Name       string `form:"name" binding:"omitempty,max=100"`
	Category   string `form:"category"`
	Categories string `form:"categories"` // 逗号分隔的slug
	Brand      string `form:"brand"`
	Brands     string `form:"brands"`
	PriceMin   string `form:"price_min"`
	PriceMax   string `form:"price_max"`
	OnSale     *bool  `form:"on_sale"`
	Available  *bool  `form:"available"`
	New        *bool  `form:"new"`
	Used       *bool  `form:"used"`
	Featured   *bool  `form:"featured"`
	Recent     bool   `form:"recent"`
	Ordering   string `form:"ordering"`
	Page       int    `form:"page" binding:"omitempty,min=1,max=100000"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1"`

	// 渔轮
	ReelType    string `form:"reel_type"`
	BearingsMin *int   `form:"bearings_min"`
	BearingsMax *int   `form:"bearings_max"`
	DragSystem  string `form:"drag_system"`
	SpareSpool  *bool  `form:"spare_spool"`
	WeightMax   string `form:"weight_max"`
	DragMin     string `form:"drag_min"`

	// 鱼竿
	RodType         string `form:"rod_type"`
	LengthMin       string `form:"length_min"`
	LengthMax       string `form:"length_max"`
	Action          string `form:"action"`
	Material        string `form:"material"`
	ClosedLengthMax string `form:"closed_length_max"`
	PowerMin        string `form:"power_min"`
	PowerMax        string `form:"power_max"`

	// 饵料（length_min/length_max与鱼竿共用参数名）
	LureType           string `form:"lure_type"`
	ArtificialCategory string `form:"artificial_category"`
	WeightMin          string `form:"weight_min"`
	Depth              string `form:"depth"`
	DepthMin           string `form:"depth_min"`
	DepthMax           string `form:"depth_max"`
	Color              string `form:"color"`
	Floating           *bool  `form:"floating"`
	Rattling           *bool  `form:"rattling"`
	TargetSpecies      string `form:"target_species"`
}

// ToRequest 转换为列表用例请求
// kind为路由对应的商品类型，/products为空
func (q *ProductListQuery) ToRequest(kind product.Kind) (productapp.ListProductsRequest, error) {
	p := &decimalParser{}

	f := product.Filter{
		Kind:       kind,
		Query:      strings.TrimSpace(q.Query),
		Name:       strings.TrimSpace(q.Name),
		Categories: slugList(q.Category, q.Categories),
		Brands:     slugList(q.Brand, q.Brands),
		PriceMin:   p.parse("price_min", q.PriceMin),
		PriceMax:   p.parse("price_max", q.PriceMax),
		OnSale:     q.OnSale,
		Available:  q.Available,
		New:        q.New,
		Used:       q.Used,
		Featured:   q.Featured,
		Ordering:   q.Ordering,
	}

	switch kind {
	case product.KindReel:
		f.Reel = &product.ReelFilter{
			ReelType:    product.ReelType(upper(q.ReelType)),
			BearingsMin: q.BearingsMin,
			BearingsMax: q.BearingsMax,
			DragSystem:  product.DragSystem(upper(q.DragSystem)),
			SpareSpool:  q.SpareSpool,
			WeightMax:   p.parse("weight_max", q.WeightMax),
			DragMin:     p.parse("drag_min", q.DragMin),
		}
		if f.Reel.ReelType != "" && !f.Reel.ReelType.Valid() {
			return productapp.ListProductsRequest{}, invalidEnum("reel_type", q.ReelType)
		}
		if f.Reel.DragSystem != "" && !f.Reel.DragSystem.Valid() {
			return productapp.ListProductsRequest{}, invalidEnum("drag_system", q.DragSystem)
		}
	case product.KindRod:
		f.Rod = &product.RodFilter{
			RodType:         product.RodType(upper(q.RodType)),
			LengthMin:       p.parse("length_min", q.LengthMin),
			LengthMax:       p.parse("length_max", q.LengthMax),
			Action:          product.RodAction(upper(q.Action)),
			Material:        strings.TrimSpace(q.Material),
			ClosedLengthMax: p.parse("closed_length_max", q.ClosedLengthMax),
		}
		if f.Rod.RodType != "" && !f.Rod.RodType.Valid() {
			return productapp.ListProductsRequest{}, invalidEnum("rod_type", q.RodType)
		}
		if f.Rod.Action != "" && !f.Rod.Action.Valid() {
			return productapp.ListProductsRequest{}, invalidEnum("action", q.Action)
		}
	case product.KindLure:
		f.Lure = &product.LureFilter{
			LureType:           product.LureType(upper(q.LureType)),
			ArtificialCategory: product.ArtificialCategory(upper(q.ArtificialCategory)),
			LengthMin:          p.parse("length_min", q.LengthMin),
			LengthMax:          p.parse("length_max", q.LengthMax),
			WeightMin:          p.parse("weight_min", q.WeightMin),
			WeightMax:          p.parse("weight_max", q.WeightMax),
			Depth:              strings.TrimSpace(q.Depth),
			Color:              strings.TrimSpace(q.Color),
			Floating:           q.Floating,
			Rattling:           q.Rattling,
			TargetSpecies:      strings.TrimSpace(q.TargetSpecies),
		}
		if f.Lure.LureType != "" && !f.Lure.LureType.Valid() {
			return productapp.ListProductsRequest{}, invalidEnum("lure_type", q.LureType)
		}
		if f.Lure.ArtificialCategory != "" && !f.Lure.ArtificialCategory.Valid() {
			return productapp.ListProductsRequest{}, invalidEnum("artificial_category", q.ArtificialCategory)
		}
	}

	if p.err != nil {
		return productapp.ListProductsRequest{}, p.err
	}

	return productapp.ListProductsRequest{
		Filter:   f,
		Recent:   q.Recent,
		Page:     q.Page,
		PageSize: q.PageSize,
		PowerMin: q.PowerMin,
		PowerMax: q.PowerMax,
		DepthMin: q.DepthMin,
		DepthMax: q.DepthMax,
	}, nil
}

// decimalParser 记录第一个解析错误，减少重复的if err判断
type decimalParser struct {
	err error
}

func (p *decimalParser) parse(name, raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" || p.err != nil {
		return nil
	}
	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		p.err = apperrors.ErrInvalidParams.WithMessage(name + "必须是数字: " + raw)
		return nil
	}
	return &d
}

func invalidEnum(name, value string) error {
	return apperrors.ErrInvalidEnum.WithMessage("非法的" + name + ": " + value)
}

// slugList 合并单值参数和逗号分隔的多值参数，去重
func slugList(single, multi string) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range append([]string{single}, strings.Split(multi, ",")...) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
