// Package mq RabbitMQ消息发布与消费（基于amqp091-go）
//
// 目录服务使用topic类型的Exchange，路由键形如"product.updated"，
// 消费者可以用"product.*"、"#"订阅。
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/baitboost/catalog/pkg/metrics"
)

// Publisher 消息发布者
// amqp.Channel不是并发安全的，发布时加锁
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
	mu       sync.Mutex
}

// NewPublisher 连接RabbitMQ并声明持久化Exchange
func NewPublisher(url, exchange, exchangeType string, logger *zap.Logger) (*Publisher, error) {
	conn, channel, err := dial(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	logger.Info("消息发布者已创建",
		zap.String("exchange", exchange),
		zap.String("type", exchangeType),
	)

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish 发布JSON消息（持久化投递）
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("消息序列化失败: %w", err)
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	p.mu.Unlock()

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.exchange,
		"routing_key": routingKey,
		"result":      result,
	})

	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	p.logger.Debug("消息已发布", zap.String("routing_key", routingKey), zap.Int("bytes", len(body)))
	return nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	return closeAll(p.channel, p.conn)
}

// Handler 消息处理函数，返回错误时消息重新入队
type Handler func(ctx context.Context, routingKey string, body []byte) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *zap.Logger
}

// queueOptions Queue声明参数
type queueOptions struct {
	durable    bool
	autoDelete bool
	exclusive  bool
}

// optionsFor 有名字的Queue持久化并由多个消费者共享，消息轮流投递
// 名字为空时由服务端命名，独占且连接断开后自动删除，每个消费者都能收到全部消息
func optionsFor(queue string) queueOptions {
	if queue == "" {
		return queueOptions{autoDelete: true, exclusive: true}
	}
	return queueOptions{durable: true}
}

// NewConsumer 声明Exchange和Queue，并按routingKeys绑定
// queue为空时每个消费者使用自己的临时Queue（广播）
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string, logger *zap.Logger) (*Consumer, error) {
	conn, channel, err := dial(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	opts := optionsFor(queue)
	q, err := channel.QueueDeclare(
		queue,
		opts.durable,
		opts.autoDelete,
		opts.exclusive,
		false, // NoWait
		nil,
	)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}

	for _, routingKey := range routingKeys {
		if err := channel.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
			_ = closeAll(channel, conn)
			return nil, fmt.Errorf("绑定Queue失败: %w", err)
		}
	}

	logger.Info("消息消费者已创建",
		zap.String("queue", q.Name),
		zap.Strings("routing_keys", routingKeys),
	)

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
		logger:  logger,
	}, nil
}

// Consume 阻塞消费直到ctx取消
// 手动确认：处理成功Ack，失败Nack并重新入队
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // Consumer标签（自动生成）
		false, // AutoAck
		false, // Exclusive
		false, // NoLocal
		false, // NoWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	c.logger.Info("开始消费消息", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("消费者退出", zap.String("queue", c.queue))
			return nil

		case msg, ok := <-msgs:
			if !ok {
				return errors.New("消息Channel已关闭")
			}

			if err := handler(ctx, msg.RoutingKey, msg.Body); err != nil {
				c.logger.Warn("消息处理失败，重新入队",
					zap.String("routing_key", msg.RoutingKey),
					zap.Error(err),
				)
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	return closeAll(c.channel, c.conn)
}

func dial(url, exchange, exchangeType string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		exchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,
	)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, nil, fmt.Errorf("声明Exchange失败: %w", err)
	}
	return conn, channel, nil
}

func closeAll(channel *amqp.Channel, conn *amqp.Connection) error {
	var errs []error
	if channel != nil {
		if err := channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
