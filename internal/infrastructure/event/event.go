// Package event 目录变更事件
//
// 写操作成功后发布事件到RabbitMQ topic交换机，路由键为"{resource}.{action}"，
// 如product.updated、category.deleted。每个实例用自己的临时队列消费事件，清理本实例连接的Redis中的缓存，
// 也能补上写入方因熔断或Redis错误而没有完成的清理。
package event

import (
	"time"
)

// 资源类型
const (
	ResourceProduct  = "product"
	ResourceCategory = "category"
	ResourceBrand    = "brand"
)

// 操作类型
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event 目录变更事件
type Event struct {
	Resource     string    `json:"resource"`
	Action       string    `json:"action"`
	ID           uint      `json:"id"`
	Slug         string    `json:"slug"`
	PreviousSlug string    `json:"previous_slug,omitempty"` // 更新时slug发生变化
	Kind         string    `json:"kind,omitempty"`          // 商品类型
	OccurredAt   time.Time `json:"occurred_at"`
}

// New 创建事件
func New(resource, action string, id uint, slug string) Event {
	return Event{
		Resource:   resource,
		Action:     action,
		ID:         id,
		Slug:       slug,
		OccurredAt: time.Now().UTC(),
	}
}

// RoutingKey 路由键，如product.created
func (e Event) RoutingKey() string {
	return e.Resource + "." + e.Action
}

// RoutingPatterns 失效消费者订阅的全部路由键
func RoutingPatterns() []string {
	return []string{ResourceProduct + ".*", ResourceCategory + ".*", ResourceBrand + ".*"}
}
