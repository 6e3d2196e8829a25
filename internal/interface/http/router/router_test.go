package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/baitboost/catalog/internal/application"
	appbrand "github.com/baitboost/catalog/internal/application/brand"
	appcategory "github.com/baitboost/catalog/internal/application/category"
	appproduct "github.com/baitboost/catalog/internal/application/product"
	"github.com/baitboost/catalog/internal/domain/brand"
	"github.com/baitboost/catalog/internal/domain/category"
	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/infrastructure/config"
	"github.com/baitboost/catalog/internal/infrastructure/event"
	"github.com/baitboost/catalog/internal/interface/http/handler"
	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// =========================================
// 内存实现的领域服务
// =========================================

type productStub struct {
	product.Service
	items      []*product.Product
	lastFilter product.Filter
}

func (s *productStub) List(_ context.Context, f product.Filter) ([]*product.Product, int64, error) {
	s.lastFilter = f
	var out []*product.Product
	for _, p := range s.items {
		if f.Kind == "" || p.Kind == f.Kind {
			out = append(out, p)
		}
	}
	total := int64(len(out))
	if !f.Unpaged() {
		out = application.Slice(out, f.Page, f.PageSize)
	}
	return out, total, nil
}

func (s *productStub) GetBySlug(_ context.Context, kind product.Kind, slug string) (*product.Product, error) {
	for _, p := range s.items {
		if p.Slug == slug && (kind == "" || p.Kind == kind) {
			return p, nil
		}
	}
	return nil, product.ErrProductNotFound
}

func (s *productStub) Create(_ context.Context, in product.Input) (*product.Product, error) {
	if err := product.Validate(in); err != nil {
		return nil, err
	}
	p := &product.Product{ID: uint(len(s.items) + 1), Slug: in.Slug}
	p.Apply(in)
	s.items = append(s.items, p)
	return p, nil
}

func (s *productStub) Statistics(context.Context) (*product.Statistics, error) {
	return &product.Statistics{Total: int64(len(s.items))}, nil
}

type categoryStub struct {
	category.Service
}

func (categoryStub) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	if slug == "canne" {
		return &category.Category{ID: 1, Name: "Canne", Slug: "canne"}, nil
	}
	return nil, category.ErrCategoryNotFound
}

type brandStub struct {
	brand.Service
}

type nopCache struct{}

func (nopCache) GetProduct(context.Context, string) (*product.Product, bool) { return nil, false }
func (nopCache) SetProduct(context.Context, *product.Product) {}
func (nopCache) GetStatistics(context.Context) (*product.Statistics, bool) { return nil, false }
func (nopCache) SetStatistics(context.Context, *product.Statistics) {}
func (nopCache) InvalidateProducts(context.Context, ...string) {}
func (nopCache) InvalidateAll(context.Context) {}

type directTx struct{}

func (directTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func strPtr(s string) *string { return &s }

func rod(id uint, slug string, power *string) *product.Product {
	return &product.Product{
		ID: id, Kind: product.KindRod, Name: slug, Slug: slug,
		Price: decimal.NewFromInt(100),
		Rod:   &product.RodSpec{RodType: product.RodSpinning, Length: decimal.NewFromInt(2), CastingWeight: power},
	}
}

type testServer struct {
	products *productStub
	handler  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "test"},
		Catalog: config.CatalogConfig{DefaultPageSize: 20, MaxPageSize: 100, NewArrivalDays: 30, CollectionLimit: 10},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"https://shop.baitboost.it"},
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Content-Type"},
		},
	}

	products := &productStub{items: []*product.Product{
		rod(1, "r1", strPtr("10-30g")),
		rod(2, "r2", strPtr("15-25g")),
		rod(3, "r3", nil),
		rod(4, "r4", strPtr("bad")),
		rod(5, "r5", strPtr("5-8g")),
		{ID: 6, Kind: product.KindReel, Slug: "mulinello", Price: decimal.NewFromInt(80)},
	}}

	cache := nopCache{}
	pub := event.NopPublisher{}
	paging := application.NewPaging(cfg)

	list := appproduct.NewListProductsUseCase(products, cfg)
	productHandler := handler.NewProductHandler(
		appproduct.NewGetProductUseCase(products, cache),
		list,
		appproduct.NewManageProductUseCase(products, directTx{}, cache, pub),
		appproduct.NewCollectionsUseCase(list, cfg),
		appproduct.NewStatisticsUseCase(products, cache),
	)
	categoryHandler := handler.NewCategoryHandler(
		appcategory.NewQueryUseCase(categoryStub{}, list, paging),
		appcategory.NewManageUseCase(categoryStub{}, cache, pub),
	)
	brandHandler := handler.NewBrandHandler(appbrand.NewUseCase(brandStub{}, list, paging, cache, pub))

	return &testServer{
		products: products,
		handler:  New(cfg, zap.NewNop(), categoryHandler, brandHandler, productHandler),
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type pageData struct {
	List []struct {
		Slug string `json:"slug"`
	} `json:"list"`
	Total int64 `json:"total"`
}

func (s *testServer) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decodePage(t *testing.T, env envelope) pageData {
	t.Helper()
	var p pageData
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func pageSlugs(p pageData) []string {
	out := []string{}
	for _, item := range p.List {
		out = append(out, item.Slug)
	}
	return out
}

// =========================================
// 用例
// =========================================

func TestPing(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRods_PowerMin(t *testing.T) {
	s := newTestServer(t)
	_, env := s.do(t, http.MethodGet, "/api/v1/rods?power_min=12", "")

	require.Equal(t, 0, env.Code, env.Message)
	page := decodePage(t, env)
	assert.Equal(t, []string{"r2"}, pageSlugs(page))
	assert.Equal(t, int64(1), page.Total)
	assert.True(t, s.products.lastFilter.Unpaged(), "区间筛选时取全部候选")
}

func TestRods_PowerMax(t *testing.T) {
	s := newTestServer(t)
	_, env := s.do(t, http.MethodGet, "/api/v1/rods?power_max=28g", "")

	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, []string{"r2", "r5"}, pageSlugs(decodePage(t, env)))
}

func TestRods_InvalidThreshold(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodGet, "/api/v1/rods?power_min=tanto", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidThreshold, env.Code)
}

func TestProducts_AllKinds(t *testing.T) {
	s := newTestServer(t)
	_, env := s.do(t, http.MethodGet, "/api/v1/products?page_size=2", "")

	page := decodePage(t, env)
	assert.Equal(t, int64(6), page.Total)
	assert.Len(t, page.List, 2)
}

func TestRods_PageBeyondRange(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodGet, "/api/v1/rods?power_min=0&page_size=2&page=3", "")
	require.Equal(t, 0, env.Code, env.Message)
	page := decodePage(t, env)
	assert.Empty(t, page.List)
	assert.Equal(t, int64(3), page.Total)

	w, env := s.do(t, http.MethodGet, "/api/v1/rods?power_min=10&page=184467440737095516", "")
	assert.Equal(t, http.StatusOK, w.Code, "超大页码不能导致panic")
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)

	_, env = s.do(t, http.MethodGet, "/api/v1/products?page=100001", "")
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
}

func TestGet_KindScoped(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodGet, "/api/v1/reels/mulinello", "")
	assert.Equal(t, 0, env.Code)

	_, env = s.do(t, http.MethodGet, "/api/v1/rods/mulinello", "")
	assert.Equal(t, apperrors.ErrCodeProductNotFound, env.Code)
}

func TestReels_InvalidEnum(t *testing.T) {
	s := newTestServer(t)
	_, env := s.do(t, http.MethodGet, "/api/v1/reels?reel_type=magic", "")
	assert.Equal(t, apperrors.ErrCodeInvalidEnum, env.Code)
}

func TestProducts_InvalidPrice(t *testing.T) {
	s := newTestServer(t)
	_, env := s.do(t, http.MethodGet, "/api/v1/products?price_min=cheap", "")
	assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
}

func TestCollections_NotShadowedBySlug(t *testing.T) {
	s := newTestServer(t)
	_, env := s.do(t, http.MethodGet, "/api/v1/products/featured", "")

	require.Equal(t, 0, env.Code, env.Message)
	require.NotNil(t, s.products.lastFilter.Featured)
	assert.True(t, *s.products.lastFilter.Featured)
}

func TestStatistics(t *testing.T) {
	s := newTestServer(t)
	_, env := s.do(t, http.MethodGet, "/api/v1/products/statistics", "")

	require.Equal(t, 0, env.Code)
	var st product.Statistics
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, int64(6), st.Total)
}

func TestCategoryProducts(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodGet, "/api/v1/categories/canne/products", "")
	require.Equal(t, 0, env.Code)
	assert.Equal(t, []string{"canne"}, s.products.lastFilter.Categories)

	_, env = s.do(t, http.MethodGet, "/api/v1/categories/nope/products", "")
	assert.Equal(t, apperrors.ErrCodeCategoryNotFound, env.Code)
}

func TestCreateReel(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"name": "Stradic FM 2500",
		"slug": "stradic-fm-2500",
		"category_id": 2,
		"brand_id": 1,
		"short_description": "Mulinello da spinning",
		"price": "229.90",
		"quantity": 3,
		"reel": {"reel_type": "spinning", "bearings": 7, "drag_system": "front"}
	}`
	_, env := s.do(t, http.MethodPost, "/api/v1/reels", body)
	require.Equal(t, 0, env.Code, env.Message)

	var view appproduct.ProductView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "reel", view.Kind)
	assert.True(t, view.ForSale, "for_sale默认true")
	require.NotNil(t, view.Reel)
	assert.Equal(t, "SPINNING", view.Reel.ReelType)
}

func TestCreate_SpecMismatch(t *testing.T) {
	s := newTestServer(t)

	body := `{"name": "X", "category_id": 1, "brand_id": 1, "short_description": "x", "price": 10,
		"rod": {"rod_type": "SPINNING", "length": 2.1}}`
	_, env := s.do(t, http.MethodPost, "/api/v1/reels", body)
	assert.Equal(t, apperrors.ErrCodeKindMismatch, env.Code)
}

func TestCreate_BindError(t *testing.T) {
	s := newTestServer(t)
	_, env := s.do(t, http.MethodPost, "/api/v1/products", `{"name": ""}`)
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://shop.baitboost.it")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.baitboost.it", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
