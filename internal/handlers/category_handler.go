package handlers

import (
	"vaatco/internal/middleware"
	"vaatco/internal/services"
	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// ListPublic 公开分类列表
func (h *CategoryHandler) ListPublic(c *gin.Context) {
	categories, err := h.service.ListActive()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Categories retrieved", categories)
}

// List 分类列表（管理端）
func (h *CategoryHandler) List(c *gin.Context) {
	q := services.ParseListQuery(c, 50)
	isActive := services.ParseBoolFilter(c, "is_active")

	categories, pageInfo, err := h.service.List(q, isActive)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Categories retrieved", categories, pageInfo)
}

// GetByID 分类详情
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	category, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Category retrieved", category)
}

// Create 创建分类
func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.service.Create(middleware.CurrentAdminID(c), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, "Category created", category)
}

// Update 更新分类
func (h *CategoryHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	var req services.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.service.Update(middleware.CurrentAdminID(c), id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Category updated", category)
}

// Delete 删除分类
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	if err := h.service.Delete(id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Category deleted", nil)
}
