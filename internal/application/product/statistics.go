package product

import (
	"context"

	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/pkg/tracing"
)

// StatisticsUseCase 目录统计用例
// 统计结果缓存到任一商品写操作为止
type StatisticsUseCase struct {
	productService product.Service
	cache          Cache
}

// NewStatisticsUseCase 创建统计用例
func NewStatisticsUseCase(productService product.Service, cache Cache) *StatisticsUseCase {
	return &StatisticsUseCase{productService: productService, cache: cache}
}

// Execute 查询统计
func (uc *StatisticsUseCase) Execute(ctx context.Context) (*product.Statistics, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Statistics")
	defer span.End()

	if st, ok := uc.cache.GetStatistics(ctx); ok {
		return st, nil
	}

	st, err := uc.productService.Statistics(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	uc.cache.SetStatistics(ctx, st)
	return st, nil
}
