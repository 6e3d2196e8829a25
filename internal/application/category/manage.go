package category

import (
	"context"

	"go.uber.org/zap"

	"github.com/baitboost/catalog/internal/domain/category"
	"github.com/baitboost/catalog/internal/infrastructure/event"
	"github.com/baitboost/catalog/pkg/logger"
	"github.com/baitboost/catalog/pkg/metrics"
)

// Cache 分类写操作需要的缓存能力
// 商品详情里嵌入了分类名称，分类变更后整个目录缓存失效
type Cache interface {
	InvalidateAll(ctx context.Context)
}

// ManageUseCase 分类写操作用例
type ManageUseCase struct {
	categoryService category.Service
	cache           Cache
	publisher       event.Publisher
}

// NewManageUseCase 创建分类写操作用例
func NewManageUseCase(categoryService category.Service, cache Cache, publisher event.Publisher) *ManageUseCase {
	return &ManageUseCase{
		categoryService: categoryService,
		cache:           cache,
		publisher:       publisher,
	}
}

// Create 创建分类
func (uc *ManageUseCase) Create(ctx context.Context, in category.Input) (*CategoryView, error) {
	c, err := uc.categoryService.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.afterWrite(ctx, c, event.ActionCreated, "")
	return ToView(c), nil
}

// Update 按slug修改分类
func (uc *ManageUseCase) Update(ctx context.Context, slug string, in category.Input) (*CategoryView, error) {
	c, err := uc.categoryService.Update(ctx, slug, in)
	if err != nil {
		return nil, err
	}
	previous := ""
	if c.Slug != slug {
		previous = slug
	}
	uc.afterWrite(ctx, c, event.ActionUpdated, previous)
	return ToView(c), nil
}

// Delete 按slug删除分类，子分类变为顶级分类
func (uc *ManageUseCase) Delete(ctx context.Context, slug string) error {
	c, err := uc.categoryService.Delete(ctx, slug)
	if err != nil {
		return err
	}
	uc.afterWrite(ctx, c, event.ActionDeleted, "")
	return nil
}

func (uc *ManageUseCase) afterWrite(ctx context.Context, c *category.Category, action, previousSlug string) {
	// 新建分类下还没有商品，不影响缓存
	if action != event.ActionCreated {
		uc.cache.InvalidateAll(ctx)
	}

	metrics.IncCounterVec(metrics.CatalogWritesTotal, map[string]string{
		"resource": event.ResourceCategory,
		"action":   action,
	})

	e := event.New(event.ResourceCategory, action, c.ID, c.Slug)
	e.PreviousSlug = previousSlug
	uc.publisher.Publish(ctx, e)

	logger.FromContext(ctx).Info("分类变更",
		zap.String("action", action),
		zap.Uint("category_id", c.ID),
		zap.String("slug", c.Slug))
}
