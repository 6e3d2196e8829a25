// BaitBoost目录服务
//
//	@title			BaitBoost Catalog API
//	@version		1.0
//	@description	渔具商品目录：分类、品牌、商品及渔轮/鱼竿/饵料专属筛选
//	@BasePath		/api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/baitboost/catalog/docs"
	"github.com/baitboost/catalog/internal/infrastructure/config"
	"github.com/baitboost/catalog/internal/infrastructure/event"
	"github.com/baitboost/catalog/pkg/logger"
	"github.com/baitboost/catalog/pkg/metrics"
	"github.com/baitboost/catalog/pkg/tracing"
)

// version 构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

func main() {
	// 1. 加载配置（.env → config.yaml → 环境变量）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 日志
	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	zlog.Info("配置加载成功",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("mq", cfg.MQ.Enabled))

	// 3. 指标、追踪
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(tracing.Options{
			ServiceName:    cfg.Tracing.ServiceName,
			ServiceVersion: version,
			Environment:    cfg.Server.Mode,
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
			SampleRatio:    cfg.Tracing.SampleRatio,
		})
		if err != nil {
			zlog.Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zlog.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
	}

	// 4. 依赖注入
	app, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	// 5. 缓存失效消费者，ctx取消时退出
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go func() {
		if err := event.RunInvalidationConsumer(ctx, cfg, app.Invalidator, zlog); err != nil {
			zlog.Error("缓存失效消费者退出", zap.Error(err))
		}
	}()

	// 6. HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("服务启动成功", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 7. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务...")
	stop()

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("服务器强制关闭", zap.Error(err))
		return
	}
	zlog.Info("服务已关闭")
}
