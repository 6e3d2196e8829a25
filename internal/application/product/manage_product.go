package product

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/infrastructure/event"
	"github.com/baitboost/catalog/pkg/logger"
	"github.com/baitboost/catalog/pkg/metrics"
	"github.com/baitboost/catalog/pkg/tracing"
)

// ManageProductUseCase 商品写操作用例（创建、修改、删除）
//
// 每个写操作的流程：
//  1. 在事务中执行领域服务（商品、图片、规格一起提交或回滚）
//  2. 提交后清理商品详情缓存和统计缓存
//  3. 记录写操作指标
//  4. 发布变更事件，通知其他实例
type ManageProductUseCase struct {
	productService product.Service
	txManager      TxManager
	cache          Cache
	publisher      event.Publisher
}

// NewManageProductUseCase 创建商品写操作用例
func NewManageProductUseCase(
	productService product.Service,
	txManager TxManager,
	cache Cache,
	publisher event.Publisher,
) *ManageProductUseCase {
	return &ManageProductUseCase{
		productService: productService,
		txManager:      txManager,
		cache:          cache,
		publisher:      publisher,
	}
}

// Create 创建商品
// kind非空时（如POST /reels）以路由的类型为准
func (uc *ManageProductUseCase) Create(ctx context.Context, kind product.Kind, in product.Input) (*ProductView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateProduct")
	defer span.End()

	if kind != "" {
		if in.Kind != "" && in.Kind != kind {
			return nil, product.ErrKindMismatch
		}
		in.Kind = kind
	}
	if in.Kind == "" {
		in.Kind = product.KindGeneric
	}

	var created *product.Product
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = uc.productService.Create(txCtx, in)
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("product.slug", created.Slug))
	uc.afterWrite(ctx, created, event.ActionCreated, "")
	return ToView(created), nil
}

// Update 按slug修改商品
func (uc *ManageProductUseCase) Update(ctx context.Context, kind product.Kind, slug string, in product.Input) (*ProductView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.slug", slug))

	var updated *product.Product
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = uc.productService.Update(txCtx, kind, slug, in)
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	previous := ""
	if updated.Slug != slug {
		previous = slug
	}
	uc.afterWrite(ctx, updated, event.ActionUpdated, previous)
	return ToView(updated), nil
}

// Delete 按slug删除商品，图片和规格级联删除
func (uc *ManageProductUseCase) Delete(ctx context.Context, kind product.Kind, slug string) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.slug", slug))

	var deleted *product.Product
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = uc.productService.Delete(txCtx, kind, slug)
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	uc.afterWrite(ctx, deleted, event.ActionDeleted, "")
	return nil
}

// afterWrite 事务提交后的收尾工作，失败不影响写操作结果
func (uc *ManageProductUseCase) afterWrite(ctx context.Context, p *product.Product, action, previousSlug string) {
	slugs := []string{p.Slug}
	if previousSlug != "" {
		slugs = append(slugs, previousSlug)
	}
	uc.cache.InvalidateProducts(ctx, slugs...)

	metrics.IncCounterVec(metrics.CatalogWritesTotal, map[string]string{
		"resource": writeResource(p.Kind),
		"action":   action,
	})

	e := event.New(event.ResourceProduct, action, p.ID, p.Slug)
	e.PreviousSlug = previousSlug
	e.Kind = string(p.Kind)
	uc.publisher.Publish(ctx, e)

	logger.FromContext(ctx).Info("商品已"+actionText(action),
		zap.Uint("product_id", p.ID),
		zap.String("slug", p.Slug),
		zap.String("kind", string(p.Kind)))
}

// writeResource 指标标签：通用商品记为product，其余按类型
func writeResource(kind product.Kind) string {
	if kind == "" || kind == product.KindGeneric {
		return event.ResourceProduct
	}
	return string(kind)
}

func actionText(action string) string {
	switch action {
	case event.ActionCreated:
		return "创建"
	case event.ActionUpdated:
		return "更新"
	case event.ActionDeleted:
		return "删除"
	}
	return action
}
