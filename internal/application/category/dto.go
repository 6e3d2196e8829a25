package category

import (
	"github.com/baitboost/catalog/internal/application"
	"github.com/baitboost/catalog/internal/domain/category"
)

// CategoryView 分类响应DTO
type CategoryView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ParentID    *uint  `json:"parent_id"`
	SortOrder   int    `json:"sort_order"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ToView 实体转DTO
func ToView(c *category.Category) *CategoryView {
	return &CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		ParentID:    c.ParentID,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt.Format(application.TimeLayout),
		UpdatedAt:   c.UpdatedAt.Format(application.TimeLayout),
	}
}

func toViews(list []*category.Category) []CategoryView {
	views := make([]CategoryView, 0, len(list))
	for _, c := range list {
		views = append(views, *ToView(c))
	}
	return views
}
