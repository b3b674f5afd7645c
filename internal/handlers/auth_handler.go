package handlers

import (
	"vaatco/internal/middleware"
	"vaatco/internal/services"
	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AdminService
}

func NewAuthHandler(service *services.AdminService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(&req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Login successful", result)
}

// Profile 获取当前登录管理员
func (h *AuthHandler) Profile(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}
	response.Success(c, "Profile retrieved", admin)
}

// UpdateProfile 更新个人资料
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.service.UpdateProfile(middleware.CurrentAdminID(c), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Profile updated", admin)
}

// ChangePassword 修改自己的密码
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(middleware.CurrentAdminID(c), &req); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Password changed", nil)
}
