package handlers

import (
	"vaatco/internal/middleware"
	"vaatco/internal/services"
	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

type GalleryHandler struct {
	service *services.GalleryService
}

func NewGalleryHandler(service *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// ListPublic 公开图片列表
func (h *GalleryHandler) ListPublic(c *gin.Context) {
	q := services.ParseListQuery(c, 24)

	images, pageInfo, err := h.service.ListActive(q)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Images retrieved", images, pageInfo)
}

// Recent 公开最新图片
func (h *GalleryHandler) Recent(c *gin.Context) {
	images, err := h.service.Recent(parseLimitQuery(c, "limit"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Recent images retrieved", images)
}

// Featured 公开推荐图片
func (h *GalleryHandler) Featured(c *gin.Context) {
	images, err := h.service.Featured(parseLimitQuery(c, "limit"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Featured images retrieved", images)
}

// List 图库列表（管理端）
func (h *GalleryHandler) List(c *gin.Context) {
	q := services.ParseListQuery(c, 24)
	filter := &services.GalleryFilter{
		IsActive:   services.ParseBoolFilter(c, "is_active"),
		IsFeatured: services.ParseBoolFilter(c, "is_featured"),
	}

	images, pageInfo, err := h.service.List(q, filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Paginated(c, "Images retrieved", images, pageInfo)
}

// Selection 启用图片选择列表（选图器）
func (h *GalleryHandler) Selection(c *gin.Context) {
	images, err := h.service.Selection()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Images retrieved", images)
}

// ByUsage 按使用次数排序
func (h *GalleryHandler) ByUsage(c *gin.Context) {
	images, err := h.service.ByUsage(parseLimitQuery(c, "limit"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Images retrieved", images)
}

// Stats 图库使用统计
func (h *GalleryHandler) Stats(c *gin.Context) {
	stats, err := h.service.UsageStats()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, "Gallery stats retrieved", stats)
}

// GetByID 图片详情
func (h *GalleryHandler) GetByID(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	image, err := h.service.GetByID(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Image retrieved", image)
}

// Upload 上传单张图片
func (h *GalleryHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "No image file provided")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read file")
		return
	}
	defer file.Close()

	image, err := h.service.Upload(c.Request.Context(), middleware.CurrentAdminID(c), file, header.Filename)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, "Image uploaded", image)
}

// UploadMany 批量上传
func (h *GalleryHandler) UploadMany(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		response.BadRequest(c, "No image files provided")
		return
	}

	results := h.service.UploadMany(c.Request.Context(), middleware.CurrentAdminID(c), files)
	response.Created(c, "Upload completed", results)
}

// ToggleStatus 切换启用状态
func (h *GalleryHandler) ToggleStatus(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	image, err := h.service.ToggleStatus(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Image status updated", image)
}

// ToggleFeatured 切换推荐标记
func (h *GalleryHandler) ToggleFeatured(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	image, err := h.service.ToggleFeatured(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Image featured flag updated", image)
}

// IncrementUsage 记录一次引用
func (h *GalleryHandler) IncrementUsage(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	image, err := h.service.IncrementUsage(id)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Usage recorded", image)
}

// UpdateSortOrder 批量更新排序
func (h *GalleryHandler) UpdateSortOrder(c *gin.Context) {
	var req struct {
		Items []services.SortOrderItem `json:"items" binding:"required,min=1,dive"`
	}
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateSortOrder(req.Items); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Sort order updated", nil)
}

// BulkUpdate 批量更新白名单字段
func (h *GalleryHandler) BulkUpdate(c *gin.Context) {
	var req services.BulkUpdateGalleryRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.BulkUpdate(&req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Images updated", gin.H{"updated": updated})
}

// BulkDeleteRequest 批量删除请求
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// BulkDelete 批量删除图片
func (h *GalleryHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := h.service.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Images deleted", gin.H{"deleted": deleted})
}

// Delete 删除图片
func (h *GalleryHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, "Image deleted", nil)
}
