package main

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/baitboost/catalog/internal/infrastructure/config"
	"github.com/baitboost/catalog/internal/infrastructure/event"
	"github.com/baitboost/catalog/internal/infrastructure/persistence/mysql"
	"github.com/baitboost/catalog/internal/infrastructure/persistence/redis"
)

// App 组装完成的应用
type App struct {
	Engine      *gin.Engine
	Invalidator *event.CacheInvalidator
}

// provideDB 创建数据库连接，cleanup关闭连接池
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("关闭数据库连接失败", zap.Error(err))
			}
		}
	}
	return db, cleanup, nil
}

// provideRedisClient 创建Redis客户端，未启用时client为nil
func provideRedisClient(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client == nil {
			return
		}
		if err := client.Close(); err != nil {
			log.Warn("关闭Redis连接失败", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

// provideCacheStore 只需要cache段配置
func provideCacheStore(client *goredis.Client, cfg *config.Config, log *zap.Logger) *redis.CacheStore {
	return redis.NewCacheStore(client, cfg.Cache, log)
}
