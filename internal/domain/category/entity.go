package category

import (
	"time"
)

// Category 商品分类(聚合根)
// 分类可以有父分类，形成树形结构（如"鱼竿" → "路亚竿"）
type Category struct {
	ID          uint
	Name        string
	Slug        string // URL标识，唯一
	Description string
	ImageURL    string
	ParentID    *uint // nil表示顶级分类
	SortOrder   int   // 越小越靠前
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot 是否顶级分类
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Apply 用输入覆盖可编辑字段
func (c *Category) Apply(in Input) {
	c.Name = in.Name
	c.Description = in.Description
	c.ImageURL = in.ImageURL
	c.ParentID = in.ParentID
	c.SortOrder = in.SortOrder
	c.UpdatedAt = time.Now()
}

// Input 创建/更新分类的输入
type Input struct {
	Name        string
	Slug        string // 为空时由Name生成
	Description string
	ImageURL    string
	ParentID    *uint
	SortOrder   int
}
