package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, c *Category) error

	Update(ctx context.Context, c *Category) error

	// Delete 删除分类，子分类的ParentID置空
	Delete(ctx context.Context, id uint) error

	FindByID(ctx context.Context, id uint) (*Category, error)

	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// ExistsBySlug 检查slug是否被excludeID以外的分类占用
	ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error)

	List(ctx context.Context, params ListParams) ([]*Category, int64, error)

	// Children 直接子分类（按sort_order, name排序）
	Children(ctx context.Context, parentID uint) ([]*Category, error)

	// CountProducts 统计分类下的商品数
	CountProducts(ctx context.Context, id uint) (int64, error)
}

// 排序字段
const (
	OrderBySortOrder = "sort_order"
	OrderByName      = "name"
)

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Search   string // 搜索名称、描述
	ParentID *uint  // 只查某个分类的子分类
	RootOnly bool   // 只查顶级分类
	Ordering string // sort_order | name，"-"前缀表示降序
}
