package handlers

import (
	"strconv"

	"vaatco/internal/middleware"
	"vaatco/internal/services"
	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service *services.ProductService
}

func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func parseLimitQuery(c *gin.Context, name string) int {
	limit, _ := strconv.Atoi(c.Query(name))
	return limit
}

// ListPublic 公开产品列表
func (h *ProductHandler) ListPublic(c *gin.Context) {
	q := services.ParseListQuery(c, 12)
	categorySlug := c.Query("category")
	isFeatured := services.ParseBoolFilter(c, "is_featured")

	products, pageInfo, err := h.service.ListPublic(q, categorySlug, isFeatured)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Products retrieved", products, pageInfo)
}

// Featured 公开推荐产品
func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.service.Featured(parseLimitQuery(c, "limit"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Featured products retrieved", products)
}

// GetBySlug 公开产品详情
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Product retrieved", product)
}

// Related 相关产品
func (h *ProductHandler) Related(c *gin.Context) {
	products, err := h.service.Related(c.Param("slug"), parseLimitQuery(c, "limit"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Related products retrieved", products)
}

// List 产品列表（管理端）
func (h *ProductHandler) List(c *gin.Context) {
	q := services.ParseListQuery(c, 12)
	filter := &services.ProductFilter{
		IsActive:   services.ParseBoolFilter(c, "is_active"),
		IsFeatured: services.ParseBoolFilter(c, "is_featured"),
	}
	if categoryID, err := strconv.ParseUint(c.Query("category_id"), 10, 32); err == nil {
		id := uint(categoryID)
		filter.CategoryID = &id
	}

	products, pageInfo, err := h.service.List(q, filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Products retrieved", products, pageInfo)
}

// GetByID 产品详情（管理端）
func (h *ProductHandler) GetByID(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Product retrieved", product)
}

// Create 创建产品
func (h *ProductHandler) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.service.Create(middleware.CurrentAdminID(c), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, "Product created", product)
}

// Update 更新产品
func (h *ProductHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.service.Update(middleware.CurrentAdminID(c), id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Product updated", product)
}

// ToggleStatus 切换上架状态
func (h *ProductHandler) ToggleStatus(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	product, err := h.service.ToggleStatus(middleware.CurrentAdminID(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Product status updated", product)
}

// ToggleFeatured 切换推荐标记
func (h *ProductHandler) ToggleFeatured(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	product, err := h.service.ToggleFeatured(middleware.CurrentAdminID(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Product featured flag updated", product)
}

// BulkUpdate 批量更新白名单字段
func (h *ProductHandler) BulkUpdate(c *gin.Context) {
	var req services.BulkUpdateProductsRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.BulkUpdate(middleware.CurrentAdminID(c), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Products updated", gin.H{"updated": updated})
}

// Stats 产品统计
func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Product stats retrieved", stats)
}

// Delete 删除产品
func (h *ProductHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	if err := h.service.Delete(id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Product deleted", nil)
}
