package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/baitboost/catalog/internal/application/category"
	"github.com/baitboost/catalog/internal/interface/http/dto"
	"github.com/baitboost/catalog/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	query  *appcategory.QueryUseCase
	manage *appcategory.ManageUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(query *appcategory.QueryUseCase, manage *appcategory.ManageUseCase) *CategoryHandler {
	return &CategoryHandler{query: query, manage: manage}
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Param        search     query string false "搜索名称、描述"
// @Param        parent_id  query int    false "父分类ID"
// @Param        root_only  query bool   false "只查顶级分类"
// @Param        ordering   query string false "name | sort_order，-前缀降序"
// @Param        page       query int    false "页码"
// @Param        page_size  query int    false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcategory.CategoryView}}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var q dto.CategoryListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.query.List(c.Request.Context(), q.ToRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        slug path string true "分类slug"
// @Success      200 {object} response.Response{data=appcategory.CategoryView}
// @Failure      200 {object} response.Response "40401 分类不存在"
// @Router       /api/v1/categories/{slug} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	view, err := h.query.Get(c.Request.Context(), slugParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Children 直接子分类
// @Summary      子分类
// @Tags         分类
// @Produce      json
// @Param        slug path string true "分类slug"
// @Success      200 {object} response.Response{data=[]appcategory.CategoryView}
// @Router       /api/v1/categories/{slug}/children [get]
func (h *CategoryHandler) Children(c *gin.Context) {
	views, err := h.query.Children(c.Request.Context(), slugParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// Products 分类下的商品，支持/products的全部通用筛选参数
// @Summary      分类下的商品
// @Tags         分类
// @Produce      json
// @Param        slug path string true "分类slug"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/categories/{slug}/products [get]
func (h *CategoryHandler) Products(c *gin.Context) {
	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	req, err := q.ToRequest("")
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.query.Products(c.Request.Context(), slugParam(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// Create 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=appcategory.CategoryView}
// @Failure      200 {object} response.Response "40001 slug已存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.manage.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Update 修改分类
// @Summary      修改分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Param        slug    path string              true "分类slug"
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=appcategory.CategoryView}
// @Failure      200 {object} response.Response "40005 父分类成环"
// @Router       /api/v1/categories/{slug} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.manage.Update(c.Request.Context(), slugParam(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Delete 删除分类
// @Summary      删除分类
// @Tags         分类
// @Produce      json
// @Param        slug path string true "分类slug"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40003 分类下仍有商品"
// @Router       /api/v1/categories/{slug} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.manage.Delete(c.Request.Context(), slugParam(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
