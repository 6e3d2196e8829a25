// Package router 组装Gin引擎：全局中间件、健康检查、指标、Swagger、/api/v1路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	appproduct "github.com/baitboost/catalog/internal/application/product"
	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/infrastructure/config"
	"github.com/baitboost/catalog/internal/interface/http/handler"
	"github.com/baitboost/catalog/internal/interface/http/middleware"
	"github.com/baitboost/catalog/pkg/response"
)

// New 创建Gin引擎
// 中间件顺序：Recovery → Logger → Tracing → Metrics → CORS → Handler
func New(
	cfg *config.Config,
	log *zap.Logger,
	categoryHandler *handler.CategoryHandler,
	brandHandler *handler.BrandHandler,
	productHandler *handler.ProductHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.Logger(log),
		middleware.Tracing(),
		middleware.CORS(cfg.CORS),
	)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// 生产环境可以通过server.enable_swagger关闭
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.GET("/:slug", categoryHandler.Get)
			categories.PUT("/:slug", categoryHandler.Update)
			categories.DELETE("/:slug", categoryHandler.Delete)
			categories.GET("/:slug/children", categoryHandler.Children)
			categories.GET("/:slug/products", categoryHandler.Products)
		}

		brands := v1.Group("/brands")
		{
			brands.GET("", brandHandler.List)
			brands.POST("", brandHandler.Create)
			brands.GET("/:slug", brandHandler.Get)
			brands.PUT("/:slug", brandHandler.Update)
			brands.DELETE("/:slug", brandHandler.Delete)
			brands.GET("/:slug/products", brandHandler.Products)
		}

		// 静态路由优先于/:slug匹配
		products := v1.Group("/products")
		{
			products.GET("/featured", productHandler.Collection(appproduct.CollectionFeatured))
			products.GET("/new-arrivals", productHandler.Collection(appproduct.CollectionNewArrivals))
			products.GET("/on-sale", productHandler.Collection(appproduct.CollectionOnSale))
			products.GET("/statistics", productHandler.Statistics)
		}
		registerProducts(products, productHandler, "")

		registerProducts(v1.Group("/reels"), productHandler, product.KindReel)
		registerProducts(v1.Group("/rods"), productHandler, product.KindRod)
		registerProducts(v1.Group("/lures"), productHandler, product.KindLure)
	}

	return r
}

// registerProducts 注册一组商品CRUD路由
func registerProducts(g *gin.RouterGroup, h *handler.ProductHandler, kind product.Kind) {
	g.GET("", h.List(kind))
	g.POST("", h.Create(kind))
	g.GET("/:slug", h.Get(kind))
	g.PUT("/:slug", h.Update(kind))
	g.DELETE("/:slug", h.Delete(kind))
}
