package product

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/infrastructure/config"
	"github.com/baitboost/catalog/internal/infrastructure/event"
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

func strPtr(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{Catalog: config.CatalogConfig{
		DefaultPageSize: 20,
		MaxPageSize:     100,
		NewArrivalDays:  30,
		CollectionLimit: 4,
	}}
}

func rodProduct(id uint, slug string, power *string) *product.Product {
	return &product.Product{
		ID:    id,
		Kind:  product.KindRod,
		Name:  "Canna " + slug,
		Slug:  slug,
		Price: decimal.NewFromInt(100),
		Rod: &product.RodSpec{
			RodType:       product.RodSpinning,
			Length:        decimal.RequireFromString("2.40"),
			CastingWeight: power,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func lureProduct(id uint, slug string, depth *string) *product.Product {
	return &product.Product{
		ID:    id,
		Kind:  product.KindLure,
		Name:  "Esca " + slug,
		Slug:  slug,
		Price: decimal.NewFromInt(12),
		Lure: &product.LureSpec{
			LureType:     product.LureArtificial,
			WorkingDepth: depth,
		},
	}
}

// sampleRods 对应 ["10-30g", "15-25g", nil, "bad", "5-8g"]
func sampleRods() []*product.Product {
	return []*product.Product{
		rodProduct(1, "r1", strPtr("10-30g")),
		rodProduct(2, "r2", strPtr("15-25g")),
		rodProduct(3, "r3", nil),
		rodProduct(4, "r4", strPtr("bad")),
		rodProduct(5, "r5", strPtr("5-8g")),
	}
}

func slugs(views []ProductView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Slug)
	}
	return out
}

// =========================================
// 详情
// =========================================

func TestGetProduct_CacheAside(t *testing.T) {
	svc := new(mockService)
	cache := newMemCache()
	uc := NewGetProductUseCase(svc, cache)
	ctx := context.Background()

	p := rodProduct(1, "canna-spinning", strPtr("10-30g"))
	svc.On("GetBySlug", mock.Anything, product.Kind(""), "canna-spinning").Return(p, nil).Once()

	view, err := uc.Execute(ctx, product.KindRod, "canna-spinning")
	require.NoError(t, err)
	assert.Equal(t, "canna-spinning", view.Slug)
	require.NotNil(t, view.Rod)

	// 第二次命中缓存，不再查库
	_, err = uc.Execute(ctx, product.KindRod, "canna-spinning")
	require.NoError(t, err)
	svc.AssertNumberOfCalls(t, "GetBySlug", 1)
}

func TestGetProduct_WrongKind(t *testing.T) {
	svc := new(mockService)
	cache := newMemCache()
	cache.SetProduct(context.Background(), rodProduct(1, "canna", nil))

	_, err := NewGetProductUseCase(svc, cache).Execute(context.Background(), product.KindReel, "canna")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := new(mockService)
	svc.On("GetBySlug", mock.Anything, product.Kind(""), "missing").Return(nil, product.ErrProductNotFound)

	_, err := NewGetProductUseCase(svc, newMemCache()).Execute(context.Background(), "", "missing")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

// =========================================
// 列表
// =========================================

func TestListProducts_PagedInStore(t *testing.T) {
	svc := new(mockService)
	uc := NewListProductsUseCase(svc, testConfig())

	svc.On("List", mock.Anything, mock.MatchedBy(func(f product.Filter) bool {
		return f.Page == 2 && f.PageSize == 100 && f.Kind == product.KindReel
	})).Return([]*product.Product{{ID: 7, Slug: "mulinello", Kind: product.KindReel}}, int64(101), nil)

	page, err := uc.Execute(context.Background(), ListProductsRequest{
		Filter:   product.Filter{Kind: product.KindReel},
		Page:     2,
		PageSize: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), page.Total)
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, []string{"mulinello"}, slugs(page.List))
}

func TestListProducts_PowerMin(t *testing.T) {
	svc := new(mockService)
	uc := NewListProductsUseCase(svc, testConfig())

	svc.On("List", mock.Anything, mock.MatchedBy(func(f product.Filter) bool {
		return f.Unpaged()
	})).Return(sampleRods(), int64(5), nil)

	page, err := uc.Execute(context.Background(), ListProductsRequest{
		Filter:   product.Filter{Kind: product.KindRod},
		PowerMin: "12",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, slugs(page.List))
	assert.Equal(t, int64(1), page.Total)
}

func TestListProducts_PowerMaxWithUnit(t *testing.T) {
	svc := new(mockService)
	uc := NewListProductsUseCase(svc, testConfig())
	svc.On("List", mock.Anything, mock.Anything).Return(sampleRods(), int64(5), nil)

	page, err := uc.Execute(context.Background(), ListProductsRequest{
		Filter:   product.Filter{Kind: product.KindRod},
		PowerMax: "28g",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r5"}, slugs(page.List))
}

func TestListProducts_InMemoryPaging(t *testing.T) {
	svc := new(mockService)
	uc := NewListProductsUseCase(svc, testConfig())
	svc.On("List", mock.Anything, mock.Anything).Return(sampleRods(), int64(5), nil)

	page, err := uc.Execute(context.Background(), ListProductsRequest{
		Filter:   product.Filter{Kind: product.KindRod},
		PowerMin: "0",
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total, "缺失和无法解析的记录不计入总数")
	assert.Equal(t, []string{"r5"}, slugs(page.List))

	page, err = uc.Execute(context.Background(), ListProductsRequest{
		Filter:   product.Filter{Kind: product.KindRod},
		PowerMin: "0",
		Page:     9,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Empty(t, page.List)
}

func TestListProducts_DepthRange(t *testing.T) {
	svc := new(mockService)
	uc := NewListProductsUseCase(svc, testConfig())
	svc.On("List", mock.Anything, mock.Anything).Return([]*product.Product{
		lureProduct(1, "minnow", strPtr("0-1m")),
		lureProduct(2, "popper", strPtr("Superficie")),
		lureProduct(3, "crank", strPtr("2-4M")),
		lureProduct(4, "jig", nil),
	}, int64(4), nil)

	page, err := uc.Execute(context.Background(), ListProductsRequest{
		Filter:   product.Filter{Kind: product.KindLure},
		DepthMin: "1,5m",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"crank"}, slugs(page.List))
}

func TestListProducts_InvalidThreshold(t *testing.T) {
	svc := new(mockService)
	uc := NewListProductsUseCase(svc, testConfig())

	_, err := uc.Execute(context.Background(), ListProductsRequest{
		Filter:   product.Filter{Kind: product.KindRod},
		PowerMin: "abc",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidThreshold))
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListProducts_RangeIgnoredForOtherKinds(t *testing.T) {
	svc := new(mockService)
	uc := NewListProductsUseCase(svc, testConfig())
	svc.On("List", mock.Anything, mock.MatchedBy(func(f product.Filter) bool {
		return f.Page == 1
	})).Return([]*product.Product{}, int64(0), nil)

	// 渔轮没有抛投重量，power_min不生效，走数据库分页
	_, err := uc.Execute(context.Background(), ListProductsRequest{
		Filter:   product.Filter{Kind: product.KindReel},
		PowerMin: "12",
	})
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestListProducts_Recent(t *testing.T) {
	svc := new(mockService)
	uc := NewListProductsUseCase(svc, testConfig())
	svc.On("List", mock.Anything, mock.MatchedBy(func(f product.Filter) bool {
		return f.Since != nil && time.Since(*f.Since) > 29*24*time.Hour
	})).Return([]*product.Product{}, int64(0), nil)

	_, err := uc.Execute(context.Background(), ListProductsRequest{Recent: true})
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

// =========================================
// 专题与统计
// =========================================

func TestCollections(t *testing.T) {
	svc := new(mockService)
	uc := NewCollectionsUseCase(NewListProductsUseCase(svc, testConfig()), testConfig())

	svc.On("List", mock.Anything, mock.MatchedBy(func(f product.Filter) bool {
		return f.OnSale != nil && *f.OnSale && f.Available != nil && f.PageSize == 4
	})).Return([]*product.Product{{Slug: "saldo"}}, int64(1), nil)

	views, err := uc.Execute(context.Background(), CollectionOnSale, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"saldo"}, slugs(views))

	_, err = uc.Execute(context.Background(), Collection("unknown"), "")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestStatistics_Cached(t *testing.T) {
	svc := new(mockService)
	cache := newMemCache()
	uc := NewStatisticsUseCase(svc, cache)

	st := &product.Statistics{Total: 3, InStock: 2, OutOfStock: 1}
	svc.On("Statistics", mock.Anything).Return(st, nil).Once()

	got, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Total)

	_, err = uc.Execute(context.Background())
	require.NoError(t, err)
	svc.AssertNumberOfCalls(t, "Statistics", 1)
}

// =========================================
// 写操作
// =========================================

func TestManageProduct_Create(t *testing.T) {
	svc := new(mockService)
	cache := newMemCache()
	tx := &fakeTx{}
	pub := &recordingPublisher{}
	uc := NewManageProductUseCase(svc, tx, cache, pub)

	in := product.Input{Name: "Canna", Rod: &product.RodSpec{RodType: product.RodSpinning}}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in product.Input) bool {
		return in.Kind == product.KindRod
	})).Return(rodProduct(9, "canna", nil), nil)

	view, err := uc.Create(context.Background(), product.KindRod, in)
	require.NoError(t, err)
	assert.Equal(t, "canna", view.Slug)
	assert.Equal(t, 1, tx.calls)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "product.created", pub.events[0].RoutingKey())
	assert.Equal(t, "rod", pub.events[0].Kind)
	assert.Contains(t, cache.invalidated, "canna")
}

func TestManageProduct_CreateKindConflict(t *testing.T) {
	svc := new(mockService)
	uc := NewManageProductUseCase(svc, &fakeTx{}, newMemCache(), &recordingPublisher{})

	_, err := uc.Create(context.Background(), product.KindReel, product.Input{Kind: product.KindRod})
	assert.ErrorIs(t, err, product.ErrKindMismatch)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestManageProduct_UpdateSlugChange(t *testing.T) {
	svc := new(mockService)
	cache := newMemCache()
	pub := &recordingPublisher{}
	uc := NewManageProductUseCase(svc, &fakeTx{}, cache, pub)

	cache.SetProduct(context.Background(), rodProduct(9, "old-slug", nil))
	svc.On("Update", mock.Anything, product.KindRod, "old-slug", mock.Anything).
		Return(rodProduct(9, "new-slug", nil), nil)

	_, err := uc.Update(context.Background(), product.KindRod, "old-slug", product.Input{Slug: "new-slug"})
	require.NoError(t, err)

	_, hit := cache.GetProduct(context.Background(), "old-slug")
	assert.False(t, hit)
	assert.ElementsMatch(t, []string{"new-slug", "old-slug"}, cache.invalidated)

	require.Len(t, pub.events, 1)
	assert.Equal(t, event.ActionUpdated, pub.events[0].Action)
	assert.Equal(t, "old-slug", pub.events[0].PreviousSlug)
}

func TestManageProduct_DeleteFailure(t *testing.T) {
	svc := new(mockService)
	pub := &recordingPublisher{}
	tx := &fakeTx{}
	uc := NewManageProductUseCase(svc, tx, newMemCache(), pub)

	svc.On("Delete", mock.Anything, product.Kind(""), "missing").Return(nil, product.ErrProductNotFound)

	err := uc.Delete(context.Background(), "", "missing")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.ErrorIs(t, tx.err, product.ErrProductNotFound, "事务回滚")
	assert.Empty(t, pub.events, "失败的写操作不发布事件")
}
