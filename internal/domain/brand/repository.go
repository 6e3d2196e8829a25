package brand

import (
	"context"
)

// Repository 品牌仓储接口
type Repository interface {
	Create(ctx context.Context, b *Brand) error
	Update(ctx context.Context, b *Brand) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Brand, error)
	FindBySlug(ctx context.Context, slug string) (*Brand, error)

	// ExistsBySlug 检查slug是否被excludeID以外的品牌占用
	ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error)

	// List 按名称排序，Search匹配名称和描述
	List(ctx context.Context, params ListParams) ([]*Brand, int64, error)

	CountProducts(ctx context.Context, id uint) (int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Desc     bool // 按名称降序
}
