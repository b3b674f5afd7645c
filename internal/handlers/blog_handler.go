package handlers

import (
	"vaatco/internal/middleware"
	"vaatco/internal/services"
	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	service *services.BlogService
}

func NewBlogHandler(service *services.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// ListPublic 公开文章列表
func (h *BlogHandler) ListPublic(c *gin.Context) {
	q := services.ParseListQuery(c, 9)
	tag := c.Query("tag")
	isFeatured := services.ParseBoolFilter(c, "is_featured")

	blogs, pageInfo, err := h.service.ListPublic(q, tag, isFeatured)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Blogs retrieved", blogs, pageInfo)
}

// Featured 公开推荐文章
func (h *BlogHandler) Featured(c *gin.Context) {
	blogs, err := h.service.Featured(parseLimitQuery(c, "limit"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Featured blogs retrieved", blogs)
}

// Recent 公开最新文章
func (h *BlogHandler) Recent(c *gin.Context) {
	blogs, err := h.service.Recent(parseLimitQuery(c, "limit"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Recent blogs retrieved", blogs)
}

// Tags 公开标签集合
func (h *BlogHandler) Tags(c *gin.Context) {
	tags, err := h.service.Tags()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Tags retrieved", tags)
}

// GetBySlug 公开文章详情
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	blog, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Blog retrieved", blog)
}

// List 文章列表（管理端，全状态）
func (h *BlogHandler) List(c *gin.Context) {
	q := services.ParseListQuery(c, 10)
	filter := &services.BlogFilter{
		Status:     c.Query("status"),
		Tag:        c.Query("tag"),
		IsFeatured: services.ParseBoolFilter(c, "is_featured"),
	}

	blogs, pageInfo, err := h.service.List(q, filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Blogs retrieved", blogs, pageInfo)
}

// GetByID 文章详情（管理端）
func (h *BlogHandler) GetByID(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	blog, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Blog retrieved", blog)
}

// Create 创建文章
func (h *BlogHandler) Create(c *gin.Context) {
	var req services.CreateBlogRequest
	if !bindJSON(c, &req) {
		return
	}

	blog, err := h.service.Create(middleware.CurrentAdminID(c), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, "Blog created", blog)
}

// Update 更新文章
func (h *BlogHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	var req services.UpdateBlogRequest
	if !bindJSON(c, &req) {
		return
	}

	blog, err := h.service.Update(middleware.CurrentAdminID(c), id, &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Blog updated", blog)
}

// ToggleFeatured 切换推荐标记
func (h *BlogHandler) ToggleFeatured(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	blog, err := h.service.ToggleFeatured(middleware.CurrentAdminID(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Blog featured flag updated", blog)
}

// Delete 删除文章
func (h *BlogHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	if err := h.service.Delete(id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Blog deleted", nil)
}
