package product

import (
	"context"
)

// Repository 商品仓储接口
// 商品、规格、图片作为一个整体读写
type Repository interface {
	// Create 保存商品及其规格和图片
	Create(ctx context.Context, p *Product) error

	// Update 更新商品，规格和图片整体替换
	Update(ctx context.Context, p *Product) error

	Delete(ctx context.Context, id uint) error

	// FindBySlug 查询商品，填充分类、品牌、规格、图片
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error)

	ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error)

	// List 按条件查询
	// filter.Page为0时忽略分页，total等于返回的条数
	List(ctx context.Context, filter Filter) ([]*Product, int64, error)

	// Statistics 汇总统计
	Statistics(ctx context.Context) (*Statistics, error)
}
