package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/infrastructure/config"
	"github.com/baitboost/catalog/pkg/circuitbreaker"
	"github.com/baitboost/catalog/pkg/metrics"
)

// CacheStore 目录缓存(Cache-Aside)
// 1. 商品详情 {prefix}:product:{slug}，统计 {prefix}:stats
// 2. 写操作后删除缓存，下次读取时重新加载
// 3. Redis故障只记录日志并按未命中处理；连续失败后熔断，直接查库
type CacheStore struct {
	client     *redis.Client
	breaker    *circuitbreaker.CircuitBreaker
	log        *zap.Logger
	prefix     string
	productTTL time.Duration
	statsTTL   time.Duration
}

// NewCacheStore 创建缓存存储，client为nil时所有操作都是空操作
func NewCacheStore(client *redis.Client, cfg config.CacheConfig, log *zap.Logger) *CacheStore {
	bc := circuitbreaker.DefaultConfig()
	if cfg.BreakerTimeout > 0 {
		bc.Timeout = cfg.BreakerTimeout
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	bc.ReadyToTrip = func(counts circuitbreaker.Counts) bool {
		return counts.ConsecutiveFailures >= failures
	}
	// key不存在不是故障
	bc.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, redis.Nil)
	}

	breaker := circuitbreaker.NewCircuitBreaker("redis-cache", bc)
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Warn("缓存熔断器状态变化",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
	})

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "catalog"
	}

	return &CacheStore{
		client:     client,
		breaker:    breaker,
		log:        log,
		prefix:     prefix,
		productTTL: cfg.ProductTTL,
		statsTTL:   cfg.StatsTTL,
	}
}

// GetProduct 读取商品详情缓存，未命中返回false
func (c *CacheStore) GetProduct(ctx context.Context, slug string) (*product.Product, bool) {
	var p product.Product
	if !c.get(ctx, "product", c.productKey(slug), &p) {
		return nil, false
	}
	return &p, true
}

// SetProduct 写入商品详情缓存
func (c *CacheStore) SetProduct(ctx context.Context, p *product.Product) {
	c.set(ctx, c.productKey(p.Slug), p, c.productTTL)
}

// GetStatistics 读取统计缓存
func (c *CacheStore) GetStatistics(ctx context.Context) (*product.Statistics, bool) {
	var st product.Statistics
	if !c.get(ctx, "stats", c.statsKey(), &st) {
		return nil, false
	}
	return &st, true
}

// SetStatistics 写入统计缓存
func (c *CacheStore) SetStatistics(ctx context.Context, st *product.Statistics) {
	c.set(ctx, c.statsKey(), st, c.statsTTL)
}

// InvalidateProducts 删除指定商品的详情缓存和统计缓存
func (c *CacheStore) InvalidateProducts(ctx context.Context, slugs ...string) {
	keys := []string{c.statsKey()}
	for _, slug := range slugs {
		keys = append(keys, c.productKey(slug))
	}
	c.del(ctx, keys...)
}

// InvalidateAll 删除全部目录缓存
// 分类、品牌改名会影响所有商品详情，使用SCAN+UNLINK批量删除
func (c *CacheStore) InvalidateAll(ctx context.Context) {
	if c.client == nil {
		return
	}

	err := c.breaker.Execute(func() error {
		iter := c.client.Scan(ctx, 0, c.prefix+":*", 200).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("扫描缓存key失败: %w", err)
		}
		if len(keys) == 0 {
			return nil
		}
		return c.client.Unlink(ctx, keys...).Err()
	})
	if err != nil {
		c.log.Warn("清空目录缓存失败", zap.Error(err))
	}
}

func (c *CacheStore) get(ctx context.Context, cache, key string, dst any) bool {
	if c.client == nil {
		return false
	}

	var val []byte
	err := c.breaker.Execute(func() error {
		var err error
		val, err = c.client.Get(ctx, key).Bytes()
		return err
	})

	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		c.count(cache, "miss")
		return false
	case errors.Is(err, circuitbreaker.ErrOpenState):
		c.count(cache, "error")
		return false
	default:
		c.count(cache, "error")
		c.log.Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal(val, dst); err != nil {
		c.count(cache, "error")
		c.log.Warn("缓存反序列化失败", zap.String("key", key), zap.Error(err))
		c.del(ctx, key)
		return false
	}

	c.count(cache, "hit")
	return true
}

func (c *CacheStore) set(ctx context.Context, key string, v any, ttl time.Duration) {
	if c.client == nil || ttl <= 0 {
		return
	}

	val, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("缓存序列化失败", zap.String("key", key), zap.Error(err))
		return
	}

	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, key, val, ttl).Err()
	})
	if err != nil {
		c.log.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
}

func (c *CacheStore) del(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}
	err := c.breaker.Execute(func() error {
		return c.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		c.log.Warn("删除缓存失败", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *CacheStore) count(cache, result string) {
	metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": cache, "result": result})
}

// productKey 格式：{prefix}:product:{slug}
func (c *CacheStore) productKey(slug string) string {
	return fmt.Sprintf("%s:product:%s", c.prefix, slug)
}

// statsKey 格式：{prefix}:stats
func (c *CacheStore) statsKey() string {
	return c.prefix + ":stats"
}
