package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/baitboost/catalog/internal/application/product"
	"github.com/baitboost/catalog/internal/domain/product"
	"github.com/baitboost/catalog/internal/interface/http/dto"
	"github.com/baitboost/catalog/pkg/response"
)

// ProductHandler 商品HTTP处理器
// /products、/reels、/rods、/lures共用一套处理逻辑，通过kind区分：
//   - /products 不限类型，创建时由请求体的kind决定（默认generic）
//   - /reels等 只能看到和操作对应类型的商品
type ProductHandler struct {
	get         *appproduct.GetProductUseCase
	list        *appproduct.ListProductsUseCase
	manage      *appproduct.ManageProductUseCase
	collections *appproduct.CollectionsUseCase
	statistics  *appproduct.StatisticsUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	get *appproduct.GetProductUseCase,
	list *appproduct.ListProductsUseCase,
	manage *appproduct.ManageProductUseCase,
	collections *appproduct.CollectionsUseCase,
	statistics *appproduct.StatisticsUseCase,
) *ProductHandler {
	return &ProductHandler{
		get:         get,
		list:        list,
		manage:      manage,
		collections: collections,
		statistics:  statistics,
	}
}

// List 商品列表
// @Summary      商品列表
// @Description  /reels、/rods、/lures额外支持各自的规格筛选；rods支持power_min/power_max（抛投重量，如15g），lures支持depth_min/depth_max（泳层，如1.5m）
// @Tags         商品
// @Produce      json
// @Param        query      query string false "搜索名称、描述、SKU、品牌、分类"
// @Param        categories query string false "分类slug，逗号分隔"
// @Param        brands     query string false "品牌slug，逗号分隔"
// @Param        price_min  query string false "最低价格"
// @Param        price_max  query string false "最高价格"
// @Param        on_sale    query bool   false "只看特价"
// @Param        available  query bool   false "只看有货"
// @Param        recent     query bool   false "最近上架"
// @Param        power_min  query string false "抛投重量下限（仅rods）"
// @Param        power_max  query string false "抛投重量上限（仅rods）"
// @Param        depth_min  query string false "泳层下限（仅lures）"
// @Param        depth_max  query string false "泳层上限（仅lures）"
// @Param        ordering   query string false "排序字段，-前缀降序，默认-created_at"
// @Param        page       query int    false "页码"
// @Param        page_size  query int    false "每页数量，最大100"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appproduct.ProductView}}
// @Failure      200 {object} response.Response "40902 区间阈值格式错误"
// @Router       /api/v1/products [get]
// @Router       /api/v1/reels [get]
// @Router       /api/v1/rods [get]
// @Router       /api/v1/lures [get]
func (h *ProductHandler) List(kind product.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q dto.ProductListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			bindError(c, err)
			return
		}
		req, err := q.ToRequest(kind)
		if err != nil {
			response.Error(c, err)
			return
		}

		page, err := h.list.Execute(c.Request.Context(), req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
	}
}

// Get 商品详情
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        slug path string true "商品slug"
// @Success      200 {object} response.Response{data=appproduct.ProductView}
// @Failure      200 {object} response.Response "40403 商品不存在"
// @Router       /api/v1/products/{slug} [get]
// @Router       /api/v1/reels/{slug} [get]
// @Router       /api/v1/rods/{slug} [get]
// @Router       /api/v1/lures/{slug} [get]
func (h *ProductHandler) Get(kind product.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := h.get.Execute(c.Request.Context(), kind, slugParam(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, view)
	}
}

// Create 创建商品
// @Summary      创建商品
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        request body dto.ProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=appproduct.ProductView}
// @Failure      200 {object} response.Response "40006 规格与类型不一致"
// @Router       /api/v1/products [post]
// @Router       /api/v1/reels [post]
// @Router       /api/v1/rods [post]
// @Router       /api/v1/lures [post]
func (h *ProductHandler) Create(kind product.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		view, err := h.manage.Create(c.Request.Context(), kind, req.ToInput())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, view)
	}
}

// Update 修改商品，图片和规格整体替换
// @Summary      修改商品
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        slug    path string             true "商品slug"
// @Param        request body dto.ProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=appproduct.ProductView}
// @Router       /api/v1/products/{slug} [put]
// @Router       /api/v1/reels/{slug} [put]
// @Router       /api/v1/rods/{slug} [put]
// @Router       /api/v1/lures/{slug} [put]
func (h *ProductHandler) Update(kind product.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		view, err := h.manage.Update(c.Request.Context(), kind, slugParam(c), req.ToInput())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, view)
	}
}

// Delete 删除商品
// @Summary      删除商品
// @Tags         商品
// @Produce      json
// @Param        slug path string true "商品slug"
// @Success      200 {object} response.Response
// @Router       /api/v1/products/{slug} [delete]
// @Router       /api/v1/reels/{slug} [delete]
// @Router       /api/v1/rods/{slug} [delete]
// @Router       /api/v1/lures/{slug} [delete]
func (h *ProductHandler) Delete(kind product.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.manage.Delete(c.Request.Context(), kind, slugParam(c)); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, nil)
	}
}

// Collection 专题：推荐、新品、特价
// @Summary      商品专题
// @Tags         商品
// @Produce      json
// @Success      200 {object} response.Response{data=[]appproduct.ProductView}
// @Router       /api/v1/products/featured [get]
// @Router       /api/v1/products/new-arrivals [get]
// @Router       /api/v1/products/on-sale [get]
func (h *ProductHandler) Collection(collection appproduct.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := h.collections.Execute(c.Request.Context(), collection, "")
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, views)
	}
}

// Statistics 目录统计
// @Summary      目录统计
// @Tags         商品
// @Produce      json
// @Success      200 {object} response.Response{data=product.Statistics}
// @Router       /api/v1/products/statistics [get]
func (h *ProductHandler) Statistics(c *gin.Context) {
	st, err := h.statistics.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, st)
}
