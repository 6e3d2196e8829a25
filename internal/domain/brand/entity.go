package brand

import (
	"time"
)

// Brand 品牌(聚合根)
type Brand struct {
	ID          uint
	Name        string
	Slug        string
	Description string
	LogoURL     string
	WebsiteURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Apply 用输入覆盖可编辑字段
func (b *Brand) Apply(in Input) {
	b.Name = in.Name
	b.Description = in.Description
	b.LogoURL = in.LogoURL
	b.WebsiteURL = in.WebsiteURL
	b.UpdatedAt = time.Now()
}

// Input 创建/更新品牌的输入
type Input struct {
	Name        string
	Slug        string
	Description string
	LogoURL     string
	WebsiteURL  string
}
