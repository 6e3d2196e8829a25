package dto

import (
	"strings"

	appbrand "github.com/baitboost/catalog/internal/application/brand"
	"github.com/baitboost/catalog/internal/domain/brand"
)

// BrandRequest 创建/修改品牌请求
// 官网地址的格式由领域服务校验
type BrandRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Shimano"`
	Slug        string `json:"slug" binding:"omitempty,max=120" example:"shimano"`
	Description string `json:"description" example:"Mulinelli e canne dal Giappone"`
	LogoURL     string `json:"logo_url" binding:"omitempty,max=500" example:"https://cdn.baitboost.it/brand/shimano.png"`
	WebsiteURL  string `json:"website_url" binding:"omitempty,max=200" example:"https://fish.shimano.com"`
}

func (r *BrandRequest) ToInput() brand.Input {
	return brand.Input{
		Name:        strings.TrimSpace(r.Name),
		Slug:        strings.TrimSpace(r.Slug),
		Description: r.Description,
		LogoURL:     r.LogoURL,
		WebsiteURL:  strings.TrimSpace(r.WebsiteURL),
	}
}

// BrandListQuery 品牌列表查询参数
type BrandListQuery struct {
	Search   string `form:"search" binding:"omitempty,max=100"`
	Ordering string `form:"ordering" binding:"omitempty,oneof=name -name"`
	Page     int    `form:"page" binding:"omitempty,min=1,max=100000"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
}

func (q *BrandListQuery) ToRequest() appbrand.ListRequest {
	return appbrand.ListRequest{
		Search:   strings.TrimSpace(q.Search),
		Desc:     q.Ordering == "-name",
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}
