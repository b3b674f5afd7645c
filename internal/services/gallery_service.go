package services

import (
	"context"
	"io"
	"mime/multipart"
	"sync"
	"time"

	"vaatco/internal/database"
	"vaatco/internal/models"
	"vaatco/pkg/errors"
	"vaatco/pkg/logger"
	"vaatco/pkg/pagination"
	"vaatco/pkg/storage"

	"gorm.io/gorm"
)

// GalleryFilter 图库列表过滤条件
type GalleryFilter struct {
	IsActive   *bool
	IsFeatured *bool
}

// GalleryUploadResult 批量上传的单文件结果
type GalleryUploadResult struct {
	Filename string               `json:"filename"`
	Success  bool                 `json:"success"`
	Message  string               `json:"message,omitempty"`
	Image    *models.GalleryImage `json:"image,omitempty"`
}

// SortOrderItem 排序更新项
type SortOrderItem struct {
	ID        uint `json:"id" binding:"required"`
	SortOrder int  `json:"sort_order"`
}

// BulkUpdateGalleryRequest 批量更新请求，仅白名单字段可变更
type BulkUpdateGalleryRequest struct {
	IDs        []uint `json:"ids" binding:"required,min=1"`
	IsActive   *bool  `json:"is_active"`
	IsFeatured *bool  `json:"is_featured"`
	SortOrder  *int   `json:"sort_order"`
}

// GalleryStats 图库使用统计
type GalleryStats struct {
	TotalImages    int64                 `json:"total_images"`
	ActiveImages   int64                 `json:"active_images"`
	FeaturedImages int64                 `json:"featured_images"`
	UnusedImages   int64                 `json:"unused_images"`
	TotalUsage     int64                 `json:"total_usage"`
	AvgUsage       float64               `json:"avg_usage"`
	MaxUsage       int64                 `json:"max_usage"`
	MinUsage       int64                 `json:"min_usage"`
	TopUsed        []models.GalleryImage `json:"top_used"`
}

// GalleryService 图库服务
type GalleryService struct {
	db    *gorm.DB
	store storage.Store
}

// NewGalleryService 创建图库服务实例
func NewGalleryService(store storage.Store) *GalleryService {
	return &GalleryService{
		db:    database.GetDB(),
		store: store,
	}
}

// 图库可排序列白名单
var gallerySortable = map[string]bool{
	"sort_order":   true,
	"usage_count":  true,
	"last_used_at": true,
	"created_at":   true,
}

func (s *GalleryService) filtered(filter *GalleryFilter) *gorm.DB {
	query := s.db.Model(&models.GalleryImage{})
	if filter == nil {
		return query
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	return query
}

// List 分页查询图库（管理端）
func (s *GalleryService) List(q *ListQuery, filter *GalleryFilter) ([]models.GalleryImage, *pagination.PageInfo, error) {
	query := s.filtered(filter)
	query = applySort(query, q.SortBy, q.SortOrder, gallerySortable, "created_at")

	var images []models.GalleryImage
	pageInfo, err := paginate(query.Preload("UploadedBy"), q.Page, q.Limit, &images)
	if err != nil {
		return nil, nil, errors.From(err, "Gallery image")
	}
	return images, pageInfo, nil
}

// Selection 启用的图片选择列表（管理端选图器用，不分页）
func (s *GalleryService) Selection() ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, created_at DESC").
		Find(&images).Error
	if err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	return images, nil
}

// Featured 公开查询推荐图片
func (s *GalleryService) Featured(limit int) ([]models.GalleryImage, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	var images []models.GalleryImage
	err := s.db.Where("is_active = ? AND is_featured = ?", true, true).
		Order("sort_order ASC, created_at DESC").
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	return images, nil
}

// ListActive 公开分页查询启用的图片
func (s *GalleryService) ListActive(q *ListQuery) ([]models.GalleryImage, *pagination.PageInfo, error) {
	active := true
	query := s.filtered(&GalleryFilter{IsActive: &active})
	query = applySort(query, q.SortBy, q.SortOrder, gallerySortable, "sort_order ASC, created_at")

	var images []models.GalleryImage
	pageInfo, err := paginate(query, q.Page, q.Limit, &images)
	if err != nil {
		return nil, nil, errors.From(err, "Gallery image")
	}
	return images, pageInfo, nil
}

// Recent 公开查询最新上传的启用图片
func (s *GalleryService) Recent(limit int) ([]models.GalleryImage, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	var images []models.GalleryImage
	err := s.db.Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	return images, nil
}

// ByUsage 按使用次数排序的图片（管理端报表用）
func (s *GalleryService) ByUsage(limit int) ([]models.GalleryImage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var images []models.GalleryImage
	err := s.db.Order("usage_count DESC, last_used_at DESC NULLS LAST").
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	return images, nil
}

// GetByID 按ID查询图片
func (s *GalleryService) GetByID(id uint) (*models.GalleryImage, error) {
	var image models.GalleryImage
	if err := s.db.First(&image, id).Error; err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	return &image, nil
}

// Upload 上传单张图片。远端上传失败时不落库；落库失败时
// 尽力回收已上传的远端对象。
func (s *GalleryService) Upload(ctx context.Context, actorID uint, file io.Reader, filename string) (*models.GalleryImage, error) {
	result, err := s.store.Upload(ctx, file, filename)
	if err != nil {
		logger.GetLogger().Errorf("图片上传到存储失败: %v", err)
		return nil, errors.NewUpstream("Image upload failed")
	}

	image := &models.GalleryImage{
		URL:          result.URL,
		PublicID:     result.PublicID,
		IsActive:     true,
		UploadedByID: actorID,
	}
	if err := s.db.Create(image).Error; err != nil {
		logger.GetLogger().Errorf("图片记录创建失败: %v", err)
		if destroyErr := s.store.Destroy(ctx, result.PublicID); destroyErr != nil {
			logger.GetLogger().Warnf("远端对象回收失败 %s: %v", result.PublicID, destroyErr)
		}
		return nil, errors.From(err, "Gallery image")
	}
	return image, nil
}

// UploadMany 批量上传，逐个处理并汇总每个文件的结果
func (s *GalleryService) UploadMany(ctx context.Context, actorID uint, files []*multipart.FileHeader) []GalleryUploadResult {
	results := make([]GalleryUploadResult, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			results = append(results, GalleryUploadResult{
				Filename: header.Filename,
				Message:  "Failed to read file",
			})
			continue
		}

		image, err := s.Upload(ctx, actorID, file, header.Filename)
		file.Close()
		if err != nil {
			results = append(results, GalleryUploadResult{
				Filename: header.Filename,
				Message:  err.Error(),
			})
			continue
		}

		results = append(results, GalleryUploadResult{
			Filename: header.Filename,
			Success:  true,
			Image:    image,
		})
	}
	return results
}

// ToggleStatus 切换启用状态
func (s *GalleryService) ToggleStatus(id uint) (*models.GalleryImage, error) {
	image, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	image.IsActive = !image.IsActive
	if err := s.db.Save(image).Error; err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	return image, nil
}

// ToggleFeatured 切换推荐标记
func (s *GalleryService) ToggleFeatured(id uint) (*models.GalleryImage, error) {
	image, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	image.IsFeatured = !image.IsFeatured
	if err := s.db.Save(image).Error; err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	return image, nil
}

// IncrementUsage 记录一次引用并刷新最近使用时间
func (s *GalleryService) IncrementUsage(id uint) (*models.GalleryImage, error) {
	image, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Model(image).Updates(map[string]interface{}{
		"usage_count":  gorm.Expr("usage_count + 1"),
		"last_used_at": now,
	}).Error
	if err != nil {
		return nil, errors.From(err, "Gallery image")
	}

	image.UsageCount++
	image.LastUsedAt = &now
	return image, nil
}

// UpdateSortOrder 批量更新排序权重
func (s *GalleryService) UpdateSortOrder(items []SortOrderItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			err := tx.Model(&models.GalleryImage{}).
				Where("id = ?", item.ID).
				Update("sort_order", item.SortOrder).Error
			if err != nil {
				return errors.From(err, "Gallery image")
			}
		}
		return nil
	})
}

// Delete 删除图片。先尽力删除远端对象，远端失败仅记录日志，
// 本地记录始终删除。
func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	image, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.store.Destroy(ctx, image.PublicID); err != nil {
		logger.GetLogger().Warnf("远端对象删除失败 %s: %v", image.PublicID, err)
	}

	if err := s.db.Delete(image).Error; err != nil {
		logger.GetLogger().Errorf("删除图片记录失败: %v", err)
		return errors.From(err, "Gallery image")
	}
	return nil
}

// BulkDelete 批量删除。远端对象并发删除且各自独立容错，
// 随后一次性删除本地记录，返回实际删除的记录数。
func (s *GalleryService) BulkDelete(ctx context.Context, ids []uint) (int64, error) {
	var images []models.GalleryImage
	if err := s.db.Where("id IN ?", ids).Find(&images).Error; err != nil {
		return 0, errors.From(err, "Gallery image")
	}
	if len(images) == 0 {
		return 0, nil
	}

	var wg sync.WaitGroup
	for i := range images {
		wg.Add(1)
		go func(publicID string) {
			defer wg.Done()
			if err := s.store.Destroy(ctx, publicID); err != nil {
				logger.GetLogger().Warnf("远端对象删除失败 %s: %v", publicID, err)
			}
		}(images[i].PublicID)
	}
	wg.Wait()

	result := s.db.Where("id IN ?", ids).Delete(&models.GalleryImage{})
	if result.Error != nil {
		return 0, errors.From(result.Error, "Gallery image")
	}
	return result.RowsAffected, nil
}

// BulkUpdate 批量更新白名单字段，返回受影响的记录数
func (s *GalleryService) BulkUpdate(req *BulkUpdateGalleryRequest) (int64, error) {
	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if len(updates) == 0 {
		return 0, errors.NewBadRequest("No updatable fields provided")
	}

	result := s.db.Model(&models.GalleryImage{}).
		Where("id IN ?", req.IDs).
		Updates(updates)
	if result.Error != nil {
		return 0, errors.From(result.Error, "Gallery image")
	}
	return result.RowsAffected, nil
}

// UsageStats 图库使用统计
func (s *GalleryService) UsageStats() (*GalleryStats, error) {
	stats := &GalleryStats{}
	model := func() *gorm.DB { return s.db.Model(&models.GalleryImage{}) }

	if err := model().Count(&stats.TotalImages).Error; err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	if err := model().Where("is_active = ?", true).Count(&stats.ActiveImages).Error; err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	if err := model().Where("is_featured = ?", true).Count(&stats.FeaturedImages).Error; err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	if err := model().Where("usage_count = 0").Count(&stats.UnusedImages).Error; err != nil {
		return nil, errors.From(err, "Gallery image")
	}

	var usage struct {
		Total int64
		Avg   float64
		Max   int64
		Min   int64
	}
	err := model().
		Select("COALESCE(SUM(usage_count), 0) AS total, COALESCE(AVG(usage_count), 0) AS avg, COALESCE(MAX(usage_count), 0) AS max, COALESCE(MIN(usage_count), 0) AS min").
		Scan(&usage).Error
	if err != nil {
		return nil, errors.From(err, "Gallery image")
	}
	stats.TotalUsage = usage.Total
	stats.AvgUsage = usage.Avg
	stats.MaxUsage = usage.Max
	stats.MinUsage = usage.Min

	topUsed, err := s.ByUsage(10)
	if err != nil {
		return nil, err
	}
	stats.TopUsed = topUsed

	return stats, nil
}
