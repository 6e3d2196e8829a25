package product

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/pkg/tracing"
)

// GetProductUseCase 商品详情查询用例
// 先查缓存，未命中再查库并回填
type GetProductUseCase struct {
	productService product.Service
	cache          Cache
}

// NewGetProductUseCase 创建详情查询用例
func NewGetProductUseCase(productService product.Service, cache Cache) *GetProductUseCase {
	return &GetProductUseCase{
		productService: productService,
		cache:          cache,
	}
}

// Execute 按slug查询商品
// kind非空时（如/rods/:slug），其他类型的商品视为不存在
func (uc *GetProductUseCase) Execute(ctx context.Context, kind product.Kind, slug string) (*ProductView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.slug", slug), attribute.String("product.kind", string(kind)))

	p, hit := uc.cache.GetProduct(ctx, slug)
	span.SetAttributes(attribute.Bool("cache.hit", hit))
	if !hit {
		var err error
		p, err = uc.productService.GetBySlug(ctx, "", slug)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		uc.cache.SetProduct(ctx, p)
	}

	if kind != "" && p.Kind != kind {
		return nil, product.ErrProductNotFound
	}
	return ToView(p), nil
}
