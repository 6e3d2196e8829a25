package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/baitboost/catalog/internal/infrastructure/config"
	"github.com/baitboost/catalog/pkg/mq"
)

// Publisher 事件发布接口
// 发布失败只记录日志，不影响已经完成的写操作
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// NewPublisher 根据配置创建发布者
// mq.enabled为false时返回空实现；返回的cleanup用于关闭连接
func NewPublisher(cfg *config.Config, log *zap.Logger) (Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		return NopPublisher{}, func() {}, nil
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := p.Close(); err != nil {
			log.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	return &mqPublisher{publisher: p, log: log}, cleanup, nil
}

type mqPublisher struct {
	publisher *mq.Publisher
	log       *zap.Logger
}

func (p *mqPublisher) Publish(ctx context.Context, e Event) {
	if err := p.publisher.Publish(ctx, e.RoutingKey(), e); err != nil {
		p.log.Warn("发布目录事件失败",
			zap.String("routing_key", e.RoutingKey()),
			zap.String("slug", e.Slug),
			zap.Error(err))
	}
}

// NopPublisher 不发布任何事件
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
