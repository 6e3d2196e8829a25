package product

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/infrastructure/event"
)

// mockService 商品领域服务mock
type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, in product.Input) (*product.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *mockService) Update(ctx context.Context, kind product.Kind, slug string, in product.Input) (*product.Product, error) {
	args := m.Called(ctx, kind, slug, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, kind product.Kind, slug string) (*product.Product, error) {
	args := m.Called(ctx, kind, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *mockService) GetBySlug(ctx context.Context, kind product.Kind, slug string) (*product.Product, error) {
	args := m.Called(ctx, kind, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *mockService) List(ctx context.Context, filter product.Filter) ([]*product.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*product.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockService) Statistics(ctx context.Context) (*product.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Statistics), args.Error(1)
}

// memCache 内存缓存
type memCache struct {
	mu          sync.Mutex
	products    map[string]*product.Product
	stats       *product.Statistics
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{products: map[string]*product.Product{}}
}

func (c *memCache) GetProduct(_ context.Context, slug string) (*product.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[slug]
	return p, ok
}

func (c *memCache) SetProduct(_ context.Context, p *product.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.Slug] = p
}

func (c *memCache) GetStatistics(context.Context) (*product.Statistics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats, c.stats != nil
}

func (c *memCache) SetStatistics(_ context.Context, st *product.Statistics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = st
}

func (c *memCache) InvalidateProducts(_ context.Context, slugs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range slugs {
		delete(c.products, s)
	}
	c.stats = nil
	c.invalidated = append(c.invalidated, slugs...)
}

// fakeTx 直接执行，记录是否回滚
type fakeTx struct {
	calls int
	err   error
}

func (t *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if err := fn(ctx); err != nil {
		t.err = err
		return err
	}
	return nil
}

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) {
	p.events = append(p.events, e)
}
