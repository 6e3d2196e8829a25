package product

import (
	"context"

	"github.com/baitboost/catalog/internal/domain/product"
)

// Cache 商品用例使用的缓存
// 实现：infrastructure/persistence/redis.CacheStore
type Cache interface {
	GetProduct(ctx context.Context, slug string) (*product.Product, bool)
	SetProduct(ctx context.Context, p *product.Product)
	GetStatistics(ctx context.Context) (*product.Statistics, bool)
	SetStatistics(ctx context.Context, st *product.Statistics)
	InvalidateProducts(ctx context.Context, slugs ...string)
}

// TxManager 事务管理
// 实现：infrastructure/persistence/mysql.TxManager
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

const tracerName = "baitboost/catalog/product"
