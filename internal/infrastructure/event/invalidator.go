package event

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/baitboost/catalog/internal/infrastructure/config"
	"github.com/baitboost/catalog/pkg/mq"
)

// Cache 失效消费者需要的缓存操作
type Cache interface {
	InvalidateProducts(ctx context.Context, slugs ...string)
	InvalidateAll(ctx context.Context)
}

// CacheInvalidator 根据目录事件清理缓存
type CacheInvalidator struct {
	cache Cache
	log   *zap.Logger
}

// NewCacheInvalidator 创建缓存失效处理器
func NewCacheInvalidator(cache Cache, log *zap.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, log: log}
}

// Handle 处理一条事件，签名与mq.Handler一致
// 无法解析的消息直接丢弃（返回nil），避免反复重新入队
func (h *CacheInvalidator) Handle(ctx context.Context, routingKey string, body []byte) error {
	var e Event
	if err := json.Unmarshal(body, &e); err != nil {
		h.log.Warn("丢弃无法解析的目录事件", zap.String("routing_key", routingKey), zap.Error(err))
		return nil
	}

	switch e.Resource {
	case ResourceProduct:
		slugs := []string{e.Slug}
		if e.PreviousSlug != "" && e.PreviousSlug != e.Slug {
			slugs = append(slugs, e.PreviousSlug)
		}
		h.cache.InvalidateProducts(ctx, slugs...)
	case ResourceCategory, ResourceBrand:
		// 商品详情里带有分类、品牌名称
		h.cache.InvalidateAll(ctx)
	default:
		h.log.Debug("忽略未知资源的事件", zap.String("routing_key", routingKey))
		return nil
	}

	h.log.Debug("已处理目录事件",
		zap.String("routing_key", routingKey),
		zap.String("slug", e.Slug))
	return nil
}

// RunInvalidationConsumer 消费目录事件直到ctx取消
// 每个实例声明自己的临时队列，所有实例都会收到每条事件
// mq未启用或未开启消费时直接返回
func RunInvalidationConsumer(ctx context.Context, cfg *config.Config, h *CacheInvalidator, log *zap.Logger) error {
	if !cfg.MQ.Enabled || !cfg.MQ.InvalidationConsumer {
		return nil
	}

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType,
		"", RoutingPatterns(), log)
	if err != nil {
		return fmt.Errorf("创建缓存失效消费者失败: %w", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Warn("关闭缓存失效消费者失败", zap.Error(err))
		}
	}()

	return consumer.Consume(ctx, h.Handle)
}
