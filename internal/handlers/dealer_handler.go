package handlers

import (
	"vaatco/internal/middleware"
	"vaatco/internal/services"
	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

type DealerHandler struct {
	service *services.DealerService
}

func NewDealerHandler(service *services.DealerService) *DealerHandler {
	return &DealerHandler{service: service}
}

// ListPublic 公开经销商列表
func (h *DealerHandler) ListPublic(c *gin.Context) {
	q := services.ParseListQuery(c, 12)
	filter := &services.DealerFilter{
		IsVerified: services.ParseBoolFilter(c, "is_verified"),
		IsFeatured: services.ParseBoolFilter(c, "is_featured"),
		Location:   c.Query("location"),
	}

	dealers, pageInfo, err := h.service.ListPublic(q, filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Dealers retrieved", dealers, pageInfo)
}

// Featured 公开推荐经销商
func (h *DealerHandler) Featured(c *gin.Context) {
	dealers, err := h.service.Featured(parseLimitQuery(c, "limit"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Featured dealers retrieved", dealers)
}

// GetBySlug 公开经销商详情
func (h *DealerHandler) GetBySlug(c *gin.Context) {
	dealer, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Dealer retrieved", dealer)
}

// List 经销商列表（管理端）
func (h *DealerHandler) List(c *gin.Context) {
	q := services.ParseListQuery(c, 12)
	filter := &services.DealerFilter{
		IsActive:   services.ParseBoolFilter(c, "is_active"),
		IsVerified: services.ParseBoolFilter(c, "is_verified"),
		IsFeatured: services.ParseBoolFilter(c, "is_featured"),
		Location:   c.Query("location"),
	}

	dealers, pageInfo, err := h.service.List(q, filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Dealers retrieved", dealers, pageInfo)
}

// GetByID 经销商详情（管理端）
func (h *DealerHandler) GetByID(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	dealer, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Dealer retrieved", dealer)
}

// Create 创建经销商
func (h *DealerHandler) Create(c *gin.Context) {
	var req services.CreateDealerRequest
	if !bindJSON(c, &req) {
		return
	}

	dealer, err := h.service.Create(middleware.CurrentAdminID(c), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, "Dealer created", dealer)
}

// Update 更新经销商
func (h *DealerHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	var req services.UpdateDealerRequest
	if !bindJSON(c, &req) {
		return
	}

	dealer, err := h.service.Update(middleware.CurrentAdminID(c), id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Dealer updated", dealer)
}

// ToggleStatus 切换启用状态
func (h *DealerHandler) ToggleStatus(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	dealer, err := h.service.ToggleStatus(middleware.CurrentAdminID(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Dealer status updated", dealer)
}

// ToggleVerified 切换认证标记
func (h *DealerHandler) ToggleVerified(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	dealer, err := h.service.ToggleVerified(middleware.CurrentAdminID(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Dealer verification updated", dealer)
}

// ToggleFeatured 切换推荐标记
func (h *DealerHandler) ToggleFeatured(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	dealer, err := h.service.ToggleFeatured(middleware.CurrentAdminID(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Dealer featured flag updated", dealer)
}

// Delete 删除经销商
func (h *DealerHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	if err := h.service.Delete(id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Dealer deleted", nil)
}
