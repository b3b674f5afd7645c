package handlers

import (
	"vaatco/internal/middleware"
	"vaatco/internal/services"
	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service *services.AdminService
}

func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Dashboard 管理端首页统计
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.DashboardStats()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Dashboard stats retrieved", stats)
}

// List 管理员列表
func (h *AdminHandler) List(c *gin.Context) {
	q := services.ParseListQuery(c, 20)
	role := c.Query("role")
	isActive := services.ParseBoolFilter(c, "is_active")

	admins, pageInfo, err := h.service.List(q, role, isActive)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Admins retrieved", admins, pageInfo)
}

// GetByID 管理员详情
func (h *AdminHandler) GetByID(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	admin, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Admin retrieved", admin)
}

// Create 创建管理员
func (h *AdminHandler) Create(c *gin.Context) {
	actor := middleware.CurrentAdmin(c)
	if err := services.AuthorizeAdminMutation(actor, nil, services.AdminMutationCreate); err != nil {
		response.HandleError(c, err)
		return
	}

	var req services.CreateAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.service.Create(actor.ID, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, "Admin created", admin)
}

// Update 更新管理员
func (h *AdminHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	target, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	actor := middleware.CurrentAdmin(c)
	if err := services.AuthorizeAdminMutation(actor, target, services.AdminMutationPermissions); err != nil {
		response.HandleError(c, err)
		return
	}

	var req services.UpdateAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.service.Update(id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Admin updated", admin)
}

// UpdatePermissions 替换管理员授权集
func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	target, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	actor := middleware.CurrentAdmin(c)
	if err := services.AuthorizeAdminMutation(actor, target, services.AdminMutationPermissions); err != nil {
		response.HandleError(c, err)
		return
	}

	var req services.UpdatePermissionsRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.service.UpdatePermissions(id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Permissions updated", admin)
}

// ToggleStatus 启停管理员账户
func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	target, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	actor := middleware.CurrentAdmin(c)
	if err := services.AuthorizeAdminMutation(actor, target, services.AdminMutationStatus); err != nil {
		response.HandleError(c, err)
		return
	}

	admin, err := h.service.ToggleStatus(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Admin status updated", admin)
}

// Delete 删除管理员
func (h *AdminHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	target, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	actor := middleware.CurrentAdmin(c)
	if err := services.AuthorizeAdminMutation(actor, target, services.AdminMutationDelete); err != nil {
		response.HandleError(c, err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Admin deleted", nil)
}
