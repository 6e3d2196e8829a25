package dto

import (
	"strings"

	appcategory "github.com/baitboost/catalog/internal/application/category"
	"github.com/baitboost/catalog/internal/domain/category"
)

// CategoryRequest 创建/修改分类请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Canne da spinning"`
	Slug        string `json:"slug" binding:"omitempty,max=120" example:"canne-da-spinning"`
	Description string `json:"description" example:"Canne per la pesca a spinning"`
	ImageURL    string `json:"image_url" binding:"omitempty,url,max=500" example:"https://cdn.baitboost.it/cat/spinning.jpg"`
	ParentID    *uint  `json:"parent_id" example:"1"`
	SortOrder   int    `json:"sort_order" binding:"min=0" example:"10"`
}

// ToInput 转换为领域输入
func (r *CategoryRequest) ToInput() category.Input {
	return category.Input{
		Name:        strings.TrimSpace(r.Name),
		Slug:        strings.TrimSpace(r.Slug),
		Description: r.Description,
		ImageURL:    r.ImageURL,
		ParentID:    r.ParentID,
		SortOrder:   r.SortOrder,
	}
}

// CategoryListQuery 分类列表查询参数
type CategoryListQuery struct {
	Search   string `form:"search" binding:"omitempty,max=100"`
	ParentID *uint  `form:"parent_id"`
	RootOnly bool   `form:"root_only"`
	Ordering string `form:"ordering" binding:"omitempty,oneof=name -name sort_order -sort_order"`
	Page     int    `form:"page" binding:"omitempty,min=1,max=100000" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1" example:"20"`
}

func (q *CategoryListQuery) ToRequest() appcategory.ListRequest {
	return appcategory.ListRequest{
		Search:   strings.TrimSpace(q.Search),
		ParentID: q.ParentID,
		RootOnly: q.RootOnly,
		Ordering: q.Ordering,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}
