//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
// 注入链：Repository ← Service ← UseCase ← Handler ← Router

package main

import (
	"github.com/google/wire"

	"github.com/baitboost/catalog/internal/application"
	appbrand "github.com/baitboost/catalog/internal/application/brand"
	appcategory "github.com/baitboost/catalog/internal/application/category"
	appproduct "github.com/baitboost/catalog/internal/application/product"
	"github.com/baitboost/catalog/internal/domain/brand"
	"github.com/baitboost/catalog/internal/domain/category"
	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/infrastructure/config"
	"github.com/baitboost/catalog/internal/infrastructure/event"
	"github.com/baitboost/catalog/internal/infrastructure/persistence/mysql"
	"github.com/baitboost/catalog/internal/infrastructure/persistence/redis"
	"github.com/baitboost/catalog/internal/interface/http/handler"
	"github.com/baitboost/catalog/internal/interface/http/router"
	"go.uber.org/zap"
)

// infrastructureSet 基础设施：数据库、Redis、缓存、事件
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	provideCacheStore,
	event.NewPublisher,
	event.NewCacheInvalidator,
	wire.Bind(new(appproduct.Cache), new(*redis.CacheStore)),
	wire.Bind(new(appcategory.Cache), new(*redis.CacheStore)),
	wire.Bind(new(appbrand.Cache), new(*redis.CacheStore)),
	wire.Bind(new(event.Cache), new(*redis.CacheStore)),
)

// repositorySet 仓储
// 商品服务只需要分类、品牌的按ID查询，直接绑定到对应仓储
var repositorySet = wire.NewSet(
	mysql.NewCategoryRepository,
	mysql.NewBrandRepository,
	mysql.NewProductRepository,
	mysql.NewTxManager,
	wire.Bind(new(appproduct.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(product.CategoryFinder), new(category.Repository)),
	wire.Bind(new(product.BrandFinder), new(brand.Repository)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	category.NewService,
	brand.NewService,
	product.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	application.NewPaging,
	appproduct.NewGetProductUseCase,
	appproduct.NewListProductsUseCase,
	appproduct.NewManageProductUseCase,
	appproduct.NewCollectionsUseCase,
	appproduct.NewStatisticsUseCase,
	appcategory.NewQueryUseCase,
	appcategory.NewManageUseCase,
	appbrand.NewUseCase,
)

// handlerSet HTTP处理器和路由
var handlerSet = wire.NewSet(
	handler.NewCategoryHandler,
	handler.NewBrandHandler,
	handler.NewProductHandler,
	router.New,
)

// InitializeApp 组装应用
// 配置和日志由main先创建，追踪、指标要在组装前初始化
func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
