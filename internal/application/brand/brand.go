// Package brand 品牌用例：查询、品牌下的商品、写操作
package brand

import (
	"context"

	"go.uber.org/zap"

	"github.com/baitboost/catalog/internal/application"
	productapp "github.com/baitboost/catalog/internal/application/product"
	"github.com/baitboost/catalog/internal/domain/brand"
	"github.com/baitboost/catalog/internal/infrastructure/event"
	"github.com/baitboost/catalog/pkg/logger"
	"github.com/baitboost/catalog/pkg/metrics"
)

// Cache 品牌变更后整个目录缓存失效
type Cache interface {
	InvalidateAll(ctx context.Context)
}

// UseCase 品牌用例
type UseCase struct {
	brandService brand.Service
	products     *productapp.ListProductsUseCase
	paging       application.Paging
	cache        Cache
	publisher    event.Publisher
}

// NewUseCase 创建品牌用例
func NewUseCase(
	brandService brand.Service,
	products *productapp.ListProductsUseCase,
	paging application.Paging,
	cache Cache,
	publisher event.Publisher,
) *UseCase {
	return &UseCase{
		brandService: brandService,
		products:     products,
		paging:       paging,
		cache:        cache,
		publisher:    publisher,
	}
}

// ListRequest 品牌列表请求
type ListRequest struct {
	Search   string
	Desc     bool
	Page     int
	PageSize int
}

func (uc *UseCase) Get(ctx context.Context, slug string) (*BrandView, error) {
	b, err := uc.brandService.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ToView(b), nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*application.Page[BrandView], error) {
	page, pageSize := uc.paging.Normalize(req.Page, req.PageSize)

	list, total, err := uc.brandService.List(ctx, brand.ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   req.Search,
		Desc:     req.Desc,
	})
	if err != nil {
		return nil, err
	}

	views := make([]BrandView, 0, len(list))
	for _, b := range list {
		views = append(views, *ToView(b))
	}
	return &application.Page[BrandView]{List: views, Total: total, Page: page, PageSize: pageSize}, nil
}

// Products 品牌下的商品
func (uc *UseCase) Products(ctx context.Context, slug string, req productapp.ListProductsRequest) (*application.Page[productapp.ProductView], error) {
	b, err := uc.brandService.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	req.Filter.Brands = []string{b.Slug}
	return uc.products.Execute(ctx, req)
}

func (uc *UseCase) Create(ctx context.Context, in brand.Input) (*BrandView, error) {
	b, err := uc.brandService.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.afterWrite(ctx, b, event.ActionCreated, "")
	return ToView(b), nil
}

func (uc *UseCase) Update(ctx context.Context, slug string, in brand.Input) (*BrandView, error) {
	b, err := uc.brandService.Update(ctx, slug, in)
	if err != nil {
		return nil, err
	}
	previous := ""
	if b.Slug != slug {
		previous = slug
	}
	uc.afterWrite(ctx, b, event.ActionUpdated, previous)
	return ToView(b), nil
}

// Delete 品牌下有商品时返回ErrBrandInUse
func (uc *UseCase) Delete(ctx context.Context, slug string) error {
	b, err := uc.brandService.Delete(ctx, slug)
	if err != nil {
		return err
	}
	uc.afterWrite(ctx, b, event.ActionDeleted, "")
	return nil
}

func (uc *UseCase) afterWrite(ctx context.Context, b *brand.Brand, action, previousSlug string) {
	if action != event.ActionCreated {
		uc.cache.InvalidateAll(ctx)
	}

	metrics.IncCounterVec(metrics.CatalogWritesTotal, map[string]string{
		"resource": event.ResourceBrand,
		"action":   action,
	})

	e := event.New(event.ResourceBrand, action, b.ID, b.Slug)
	e.PreviousSlug = previousSlug
	uc.publisher.Publish(ctx, e)

	logger.FromContext(ctx).Info("品牌变更",
		zap.String("action", action),
		zap.Uint("brand_id", b.ID),
		zap.String("slug", b.Slug))
}
