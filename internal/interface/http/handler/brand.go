package handler

import (
	"github.com/gin-gonic/gin"

	appbrand "github.com/baitboost/catalog/internal/application/brand"
	"github.com/baitboost/catalog/internal/interface/http/dto"
	"github.com/baitboost/catalog/pkg/response"
)

// BrandHandler 品牌HTTP处理器
type BrandHandler struct {
	brands *appbrand.UseCase
}

func NewBrandHandler(brands *appbrand.UseCase) *BrandHandler {
	return &BrandHandler{brands: brands}
}

// List 品牌列表
// @Summary      品牌列表
// @Tags         品牌
// @Produce      json
// @Param        search    query string false "搜索名称、描述"
// @Param        ordering  query string false "name | -name"
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbrand.BrandView}}
// @Router       /api/v1/brands [get]
func (h *BrandHandler) List(c *gin.Context) {
	var q dto.BrandListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.brands.List(c.Request.Context(), q.ToRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// Get 品牌详情
// @Summary      品牌详情
// @Tags         品牌
// @Produce      json
// @Param        slug path string true "品牌slug"
// @Success      200 {object} response.Response{data=appbrand.BrandView}
// @Router       /api/v1/brands/{slug} [get]
func (h *BrandHandler) Get(c *gin.Context) {
	view, err := h.brands.Get(c.Request.Context(), slugParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Products 品牌下的商品
// @Summary      品牌下的商品
// @Tags         品牌
// @Produce      json
// @Param        slug path string true "品牌slug"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/brands/{slug}/products [get]
func (h *BrandHandler) Products(c *gin.Context) {
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

	page, err := h.brands.Products(c.Request.Context(), slugParam(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// Create 创建品牌
// @Summary      创建品牌
// @Tags         品牌
// @Accept       json
// @Produce      json
// @Param        request body dto.BrandRequest true "品牌信息"
// @Success      200 {object} response.Response{data=appbrand.BrandView}
// @Router       /api/v1/brands [post]
func (h *BrandHandler) Create(c *gin.Context) {
	var req dto.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.brands.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Update 修改品牌
// @Summary      修改品牌
// @Tags         品牌
// @Accept       json
// @Produce      json
// @Param        slug    path string           true "品牌slug"
// @Param        request body dto.BrandRequest true "品牌信息"
// @Success      200 {object} response.Response{data=appbrand.BrandView}
// @Router       /api/v1/brands/{slug} [put]
func (h *BrandHandler) Update(c *gin.Context) {
	var req dto.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.brands.Update(c.Request.Context(), slugParam(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Delete 删除品牌
// @Summary      删除品牌
// @Tags         品牌
// @Produce      json
// @Param        slug path string true "品牌slug"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40004 品牌下仍有商品"
// @Router       /api/v1/brands/{slug} [delete]
func (h *BrandHandler) Delete(c *gin.Context) {
	if err := h.brands.Delete(c.Request.Context(), slugParam(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
