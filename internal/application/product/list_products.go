package product

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/baitboost/catalog/internal/application"
	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/infrastructure/config"
	apperrors "github.com/baitboost/catalog/pkg/errors"
	"github.com/baitboost/catalog/pkg/logger"
	"github.com/baitboost/catalog/pkg/metrics"
	"github.com/baitboost/catalog/pkg/rangefilter"
	"github.com/baitboost/catalog/pkg/tracing"
)

// ListProductsUseCase 商品列表查询用例
//
// 两阶段查询：
//  1. 结构化条件（分类、品牌、价格、标记、规格数值、关键词）下推到数据库
//  2. 文本区间条件（鱼竿抛投重量、饵料泳层）在内存中用rangefilter筛选，再内存分页
//
// 没有区间条件时直接在数据库分页。
type ListProductsUseCase struct {
	productService product.Service
	paging         application.Paging
	newArrivalDays int
}

// NewListProductsUseCase 创建列表查询用例
func NewListProductsUseCase(productService product.Service, cfg *config.Config) *ListProductsUseCase {
	days := cfg.Catalog.NewArrivalDays
	if days <= 0 {
		days = 30
	}
	return &ListProductsUseCase{
		productService: productService,
		paging:         application.NewPaging(cfg),
		newArrivalDays: days,
	}
}

// ListProductsRequest 列表查询请求
// Filter中的分页字段被Page/PageSize覆盖
type ListProductsRequest struct {
	Filter   product.Filter
	Recent   bool // 最近N天上架
	Page     int
	PageSize int

	// 区间阈值原始文本，如"15g"、"1,5m"
	PowerMin string
	PowerMax string
	DepthMin string
	DepthMax string
}

// rangeStage 内存筛选阶段
type rangeStage struct {
	attribute string
	filter    *rangefilter.Filter[*product.Product]
	query     rangefilter.Query
}

// Execute 执行列表查询
func (uc *ListProductsUseCase) Execute(ctx context.Context, req ListProductsRequest) (*application.Page[ProductView], error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListProducts")
	defer span.End()

	// 1. 参数默认值与范围限制
	page, pageSize := uc.paging.Normalize(req.Page, req.PageSize)
	filter := req.Filter
	if req.Recent {
		since := time.Now().AddDate(0, 0, -uc.newArrivalDays)
		filter.Since = &since
	}

	// 2. 解析区间阈值，格式错误直接返回参数错误
	stages, err := uc.rangeStages(filter.Kind, req)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("product.kind", string(filter.Kind)),
		attribute.Int("range.stages", len(stages)),
	)

	// 3. 没有区间条件：数据库分页
	if len(stages) == 0 {
		filter.Page, filter.PageSize = page, pageSize
		products, total, err := uc.productService.List(ctx, filter)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		return &application.Page[ProductView]{
			List:     ToListItems(products),
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		}, nil
	}

	// 4. 有区间条件：取全部候选，内存筛选后分页
	filter.Page, filter.PageSize = 0, 0
	candidates, _, err := uc.productService.List(ctx, filter)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	matched := candidates
	for _, st := range stages {
		matched = uc.applyStage(ctx, st, matched)
	}
	span.SetAttributes(
		attribute.Int("range.candidates", len(candidates)),
		attribute.Int("range.matched", len(matched)),
	)

	return &application.Page[ProductView]{
		List:     ToListItems(application.Slice(matched, page, pageSize)),
		Total:    int64(len(matched)),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (uc *ListProductsUseCase) applyStage(ctx context.Context, st rangeStage, items []*product.Product) []*product.Product {
	_, span := tracing.StartSpan(ctx, tracerName, "RangeFilter."+st.attribute)
	defer span.End()

	labels := map[string]string{"attribute": st.attribute}
	metrics.ObserveHistogramVec(metrics.RangeFilterCandidates, labels, float64(len(items)))

	entries, skipped := st.filter.Partition(items)
	if skipped > 0 {
		metrics.AddCounterVec(metrics.RangeFilterSkippedTotal, labels, float64(skipped))
		logger.FromContext(ctx).Debug("区间属性无法解析，已排除",
			zap.String("attribute", st.attribute),
			zap.Int("skipped", skipped),
			zap.Int("candidates", len(items)))
	}

	out := st.filter.MatchEntries(entries, st.query)
	span.SetAttributes(
		attribute.Int("candidates", len(items)),
		attribute.Int("skipped", skipped),
		attribute.Int("matched", len(out)),
	)
	return out
}

// rangeStages 鱼竿支持power_min/power_max，饵料支持depth_min/depth_max
func (uc *ListProductsUseCase) rangeStages(kind product.Kind, req ListProductsRequest) ([]rangeStage, error) {
	var stages []rangeStage

	if kind == product.KindRod {
		q, err := parseQuery("power", req.PowerMin, req.PowerMax, product.CastingWeightUnit)
		if err != nil {
			return nil, err
		}
		if !q.IsZero() {
			stages = append(stages, rangeStage{attribute: "casting_weight", filter: product.CastingWeightFilter, query: q})
		}
	}

	if kind == product.KindLure {
		q, err := parseQuery("depth", req.DepthMin, req.DepthMax, product.WorkingDepthUnit)
		if err != nil {
			return nil, err
		}
		if !q.IsZero() {
			stages = append(stages, rangeStage{attribute: "working_depth", filter: product.WorkingDepthFilter, query: q})
		}
	}

	return stages, nil
}

func parseQuery(name, rawMin, rawMax, unit string) (rangefilter.Query, error) {
	var q rangefilter.Query
	parse := func(param, raw string) (*decimal.Decimal, error) {
		if strings.TrimSpace(raw) == "" {
			return nil, nil
		}
		d, err := rangefilter.ParseThreshold(raw, unit)
		if err != nil {
			return nil, apperrors.ErrInvalidThreshold.WithMessage(param + "格式错误: " + raw)
		}
		return &d, nil
	}

	var err error
	if q.Min, err = parse(name+"_min", rawMin); err != nil {
		return q, err
	}
	if q.Max, err = parse(name+"_max", rawMax); err != nil {
		return q, err
	}
	return q, nil
}
