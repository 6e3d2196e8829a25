package product

import (
	"context"

	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/infrastructure/config"
	apperrors "github.com/baitboost/catalog/pkg/errors"
	"github.com/baitboost/catalog/pkg/tracing"
)

// Collection 首页专题
type Collection string

const (
	CollectionFeatured    Collection = "featured"     // 推荐商品
	CollectionNewArrivals Collection = "new-arrivals" // 新品
	CollectionOnSale      Collection = "on-sale"      // 特价
)

// CollectionsUseCase 专题列表用例
// 只返回可售商品，条数固定为CollectionLimit
type CollectionsUseCase struct {
	list  *ListProductsUseCase
	limit int
}

// NewCollectionsUseCase 创建专题用例
func NewCollectionsUseCase(list *ListProductsUseCase, cfg *config.Config) *CollectionsUseCase {
	limit := cfg.Catalog.CollectionLimit
	if limit <= 0 {
		limit = 12
	}
	return &CollectionsUseCase{list: list, limit: limit}
}

// Execute 查询专题商品，kind为空表示所有类型
func (uc *CollectionsUseCase) Execute(ctx context.Context, c Collection, kind product.Kind) ([]ProductView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Collection."+string(c))
	defer span.End()

	yes := true
	req := ListProductsRequest{
		Filter:   product.Filter{Kind: kind, Available: &yes},
		Page:     1,
		PageSize: uc.limit,
	}

	switch c {
	case CollectionFeatured:
		req.Filter.Featured = &yes
	case CollectionNewArrivals:
		req.Recent = true
		req.Filter.Ordering = "-created_at"
	case CollectionOnSale:
		req.Filter.OnSale = &yes
	default:
		return nil, apperrors.ErrNotFound.WithMessage("专题不存在: " + string(c))
	}

	page, err := uc.list.Execute(ctx, req)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return page.List, nil
}
