package category

import (
	"context"

	"github.com/baitboost/catalog/internal/application"
	productapp "github.com/baitboost/catalog/internal/application/product"
	"github.com/baitboost/catalog/internal/domain/category"
)

// QueryUseCase 分类查询用例
type QueryUseCase struct {
	categoryService category.Service
	products        *productapp.ListProductsUseCase
	paging          application.Paging
}

// NewQueryUseCase 创建分类查询用例
func NewQueryUseCase(
	categoryService category.Service,
	products *productapp.ListProductsUseCase,
	paging application.Paging,
) *QueryUseCase {
	return &QueryUseCase{
		categoryService: categoryService,
		products:        products,
		paging:          paging,
	}
}

// ListRequest 分类列表请求
type ListRequest struct {
	Search   string
	ParentID *uint
	RootOnly bool
	Ordering string
	Page     int
	PageSize int
}

// Get 按slug查询分类
func (uc *QueryUseCase) Get(ctx context.Context, slug string) (*CategoryView, error) {
	c, err := uc.categoryService.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ToView(c), nil
}

// List 分页查询分类
func (uc *QueryUseCase) List(ctx context.Context, req ListRequest) (*application.Page[CategoryView], error) {
	page, pageSize := uc.paging.Normalize(req.Page, req.PageSize)

	list, total, err := uc.categoryService.List(ctx, category.ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   req.Search,
		ParentID: req.ParentID,
		RootOnly: req.RootOnly,
		Ordering: req.Ordering,
	})
	if err != nil {
		return nil, err
	}

	return &application.Page[CategoryView]{
		List:     toViews(list),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Children 直接子分类
func (uc *QueryUseCase) Children(ctx context.Context, slug string) ([]CategoryView, error) {
	list, err := uc.categoryService.Children(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toViews(list), nil
}

// Products 分类下的商品，分类不存在时返回ErrCategoryNotFound
// req中的其他筛选条件照常生效
func (uc *QueryUseCase) Products(ctx context.Context, slug string, req productapp.ListProductsRequest) (*application.Page[productapp.ProductView], error) {
	c, err := uc.categoryService.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	req.Filter.Categories = []string{c.Slug}
	return uc.products.Execute(ctx, req)
}
