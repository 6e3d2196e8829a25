package brand

import (
	"github.com/baitboost/catalog/internal/application"
	"github.com/baitboost/catalog/internal/domain/brand"
)

// BrandView 品牌响应DTO
type BrandView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func ToView(b *brand.Brand) *BrandView {
	return &BrandView{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		LogoURL:     b.LogoURL,
		WebsiteURL:  b.WebsiteURL,
		CreatedAt:   b.CreatedAt.Format(application.TimeLayout),
		UpdatedAt:   b.UpdatedAt.Format(application.TimeLayout),
	}
}
