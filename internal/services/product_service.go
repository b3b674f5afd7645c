package services

import (
	"time"

	"vaatco/internal/database"
	"vaatco/internal/models"
	"vaatco/pkg/errors"
	"vaatco/pkg/logger"
	"vaatco/pkg/pagination"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductImageInput 产品图片输入
type ProductImageInput struct {
	URL       string `json:"url" binding:"required,url"`
	PublicID  string `json:"public_id" binding:"required"`
	Alt       string `json:"alt" binding:"max=100"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateProductRequest 创建产品请求
type CreateProductRequest struct {
	Name             string              `json:"name" binding:"required,min=2,max=100"`
	Description      string              `json:"description" binding:"required,min=10"`
	ShortDescription string              `json:"short_description" binding:"max=500"`
	CategoryID       uint                `json:"category_id" binding:"required"`
	Images           []ProductImageInput `json:"images" binding:"omitempty,dive"`
	IsActive         *bool               `json:"is_active"`
	IsFeatured       bool                `json:"is_featured"`
	SortOrder        int                 `json:"sort_order"`
	SeoTitle         string              `json:"seo_title" binding:"max=200"`
	SeoDescription   string              `json:"seo_description" binding:"max=500"`
	SeoKeywords      []string            `json:"seo_keywords"`
}

// UpdateProductRequest 更新产品请求
type UpdateProductRequest struct {
	Name             *string             `json:"name" binding:"omitempty,min=2,max=100"`
	Description      *string             `json:"description" binding:"omitempty,min=10"`
	ShortDescription *string             `json:"short_description" binding:"omitempty,max=500"`
	CategoryID       *uint               `json:"category_id"`
	Images           []ProductImageInput `json:"images" binding:"omitempty,dive"`
	IsActive         *bool               `json:"is_active"`
	IsFeatured       *bool               `json:"is_featured"`
	SortOrder        *int                `json:"sort_order"`
	SeoTitle         *string             `json:"seo_title" binding:"omitempty,max=200"`
	SeoDescription   *string             `json:"seo_description" binding:"omitempty,max=500"`
	SeoKeywords      []string            `json:"seo_keywords"`
}

// BulkUpdateProductsRequest 批量更新请求，仅白名单字段可变更
type BulkUpdateProductsRequest struct {
	IDs        []uint `json:"ids" binding:"required,min=1"`
	IsActive   *bool  `json:"is_active"`
	IsFeatured *bool  `json:"is_featured"`
	CategoryID *uint  `json:"category_id"`
}

// ProductStats 产品统计
type ProductStats struct {
	TotalProducts    int64 `json:"total_products"`
	ActiveProducts   int64 `json:"active_products"`
	FeaturedProducts int64 `json:"featured_products"`
	TotalViews       int64 `json:"total_views"`
}

// ProductFilter 产品列表过滤条件
type ProductFilter struct {
	CategoryID *uint
	IsActive   *bool
	IsFeatured *bool
}

// ProductService 产品服务
type ProductService struct {
	db    *gorm.DB
	slugs *SlugGenerator
}

// NewProductService 创建产品服务实例
func NewProductService() *ProductService {
	db := database.GetDB()
	return &ProductService{
		db:    db,
		slugs: NewSlugGenerator(db),
	}
}

// 产品可排序列白名单
var productSortable = map[string]bool{
	"name":       true,
	"sort_order": true,
	"created_at": true,
	"views":      true,
}

func (s *ProductService) filtered(filter *ProductFilter) *gorm.DB {
	query := s.db.Model(&models.Product{})
	if filter == nil {
		return query
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	return query
}

// List 分页查询产品（管理端）
func (s *ProductService) List(q *ListQuery, filter *ProductFilter) ([]models.Product, *pagination.PageInfo, error) {
	query := s.filtered(filter)
	query = applySearch(query, q.Search, []string{"name", "description", "short_description"})
	query = applySort(query, q.SortBy, q.SortOrder, productSortable, "created_at")

	var products []models.Product
	pageInfo, err := paginate(query.Preload("Category"), q.Page, q.Limit, &products)
	if err != nil {
		return nil, nil, errors.From(err, "Product")
	}
	return products, pageInfo, nil
}

// ListPublic 公开分页查询，仅返回启用的产品
func (s *ProductService) ListPublic(q *ListQuery, categorySlug string, isFeatured *bool) ([]models.Product, *pagination.PageInfo, error) {
	filter := &ProductFilter{IsFeatured: isFeatured}
	active := true
	filter.IsActive = &active

	if categorySlug != "" {
		var category models.Category
		if err := s.db.Where("slug = ? AND is_active = ?", categorySlug, true).First(&category).Error; err != nil {
			return nil, nil, errors.From(err, "Category")
		}
		filter.CategoryID = &category.ID
	}

	query := s.filtered(filter)
	query = applySearch(query, q.Search, []string{"name", "description", "short_description"})
	query = applySort(query, q.SortBy, q.SortOrder, productSortable, "sort_order ASC, created_at")

	var products []models.Product
	pageInfo, err := paginate(query.Preload("Category"), q.Page, q.Limit, &products)
	if err != nil {
		return nil, nil, errors.From(err, "Product")
	}
	return products, pageInfo, nil
}

// GetByID 按ID查询产品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").First(&product, id).Error; err != nil {
		return nil, errors.From(err, "Product")
	}
	return &product, nil
}

// GetBySlug 公开按slug查询启用的产品并记录浏览
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		return nil, errors.From(err, "Product")
	}

	if counter := GetViewCounter(); counter != nil {
		counter.Increment("products", product.ID)
	}
	return &product, nil
}

// Featured 公开查询推荐产品
func (s *ProductService) Featured(limit int) ([]models.Product, error) {
	if limit <= 0 || limit > pagination.MaxLimit {
		limit = 8
	}
	var products []models.Product
	err := s.db.Preload("Category").
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("sort_order ASC, created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, errors.From(err, "Product")
	}
	return products, nil
}

// Related 公开查询同分类的相关产品，排除自身
func (s *ProductService) Related(slug string, limit int) ([]models.Product, error) {
	if limit <= 0 || limit > 20 {
		limit = 4
	}

	var product models.Product
	if err := s.db.Where("slug = ? AND is_active = ?", slug, true).First(&product).Error; err != nil {
		return nil, errors.From(err, "Product")
	}

	var related []models.Product
	err := s.db.
		Where("category_id = ? AND id <> ? AND is_active = ?", product.CategoryID, product.ID, true).
		Order("sort_order ASC, created_at DESC").
		Limit(limit).
		Find(&related).Error
	if err != nil {
		return nil, errors.From(err, "Product")
	}
	return related, nil
}

// Create 创建产品
func (s *ProductService) Create(actorID uint, req *CreateProductRequest) (*models.Product, error) {
	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		return nil, errors.NewBadRequest("Category not found")
	}

	slug, err := s.slugs.Generate(&models.Product{}, req.Name, 0)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:             req.Name,
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		CategoryID:       req.CategoryID,
		Images:           toProductImages(req.Images),
		IsActive:         true,
		IsFeatured:       req.IsFeatured,
		SortOrder:        req.SortOrder,
		SeoTitle:         req.SeoTitle,
		SeoDescription:   req.SeoDescription,
		SeoKeywords:      datatypes.JSONSlice[string](req.SeoKeywords),
		CreatedByID:      &actorID,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.db.Create(product).Error; err != nil {
		if appErr := errors.From(err, "Product"); appErr.Code == errors.CodeConflict {
			return nil, errors.NewConflict("slug", slug)
		}
		logger.GetLogger().Errorf("创建产品失败: %v", err)
		return nil, errors.From(err, "Product")
	}

	s.markGalleryUsage(req.Images)
	return product, nil
}

// Update 更新产品。名称变化时重新派生slug。
func (s *ProductService) Update(actorID, id uint, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != product.Name {
		slug, err := s.slugs.Generate(&models.Product{}, *req.Name, id)
		if err != nil {
			return nil, err
		}
		product.Name = *req.Name
		product.Slug = slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ShortDescription != nil {
		product.ShortDescription = *req.ShortDescription
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, *req.CategoryID).Error; err != nil {
			return nil, errors.NewBadRequest("Category not found")
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Images != nil {
		product.Images = toProductImages(req.Images)
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		product.SortOrder = *req.SortOrder
	}
	if req.SeoTitle != nil {
		product.SeoTitle = *req.SeoTitle
	}
	if req.SeoDescription != nil {
		product.SeoDescription = *req.SeoDescription
	}
	if req.SeoKeywords != nil {
		product.SeoKeywords = datatypes.JSONSlice[string](req.SeoKeywords)
	}
	product.UpdatedByID = &actorID

	if err := s.db.Save(product).Error; err != nil {
		logger.GetLogger().Errorf("更新产品失败: %v", err)
		return nil, errors.From(err, "Product")
	}

	if req.Images != nil {
		s.markGalleryUsage(req.Images)
	}
	return product, nil
}

// ToggleStatus 切换上架状态
func (s *ProductService) ToggleStatus(actorID, id uint) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.IsActive = !product.IsActive
	product.UpdatedByID = &actorID
	if err := s.db.Save(product).Error; err != nil {
		return nil, errors.From(err, "Product")
	}
	return product, nil
}

// ToggleFeatured 切换推荐标记
func (s *ProductService) ToggleFeatured(actorID, id uint) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.IsFeatured = !product.IsFeatured
	product.UpdatedByID = &actorID
	if err := s.db.Save(product).Error; err != nil {
		return nil, errors.From(err, "Product")
	}
	return product, nil
}

// BulkUpdate 批量更新白名单字段，返回受影响的记录数
func (s *ProductService) BulkUpdate(actorID uint, req *BulkUpdateProductsRequest) (int64, error) {
	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, *req.CategoryID).Error; err != nil {
			return 0, errors.NewBadRequest("Category not found")
		}
		updates["category_id"] = *req.CategoryID
	}
	if len(updates) == 0 {
		return 0, errors.NewBadRequest("No updatable fields provided")
	}
	updates["updated_by_id"] = actorID

	result := s.db.Model(&models.Product{}).Where("id IN ?", req.IDs).Updates(updates)
	if result.Error != nil {
		return 0, errors.From(result.Error, "Product")
	}
	return result.RowsAffected, nil
}

// Stats 产品统计
func (s *ProductService) Stats() (*ProductStats, error) {
	stats := &ProductStats{}
	model := func() *gorm.DB { return s.db.Model(&models.Product{}) }

	if err := model().Count(&stats.TotalProducts).Error; err != nil {
		return nil, errors.From(err, "Product")
	}
	if err := model().Where("is_active = ?", true).Count(&stats.ActiveProducts).Error; err != nil {
		return nil, errors.From(err, "Product")
	}
	if err := model().Where("is_featured = ?", true).Count(&stats.FeaturedProducts).Error; err != nil {
		return nil, errors.From(err, "Product")
	}
	if err := model().Select("COALESCE(SUM(views), 0)").Scan(&stats.TotalViews).Error; err != nil {
		return nil, errors.From(err, "Product")
	}
	return stats, nil
}

// markGalleryUsage 产品引用图库图片时累计使用次数（尽力而为）
func (s *ProductService) markGalleryUsage(images []ProductImageInput) {
	publicIDs := make([]string, 0, len(images))
	for _, img := range images {
		if img.PublicID != "" {
			publicIDs = append(publicIDs, img.PublicID)
		}
	}
	if len(publicIDs) == 0 {
		return
	}

	err := s.db.Model(&models.GalleryImage{}).
		Where("public_id IN ?", publicIDs).
		Updates(map[string]interface{}{
			"usage_count":  gorm.Expr("usage_count + 1"),
			"last_used_at": time.Now(),
		}).Error
	if err != nil {
		logger.GetLogger().Warnf("更新图库使用次数失败: %v", err)
	}
}

// Delete 删除产品
func (s *ProductService) Delete(id uint) error {
	product, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(product).Error; err != nil {
		logger.GetLogger().Errorf("删除产品失败: %v", err)
		return errors.From(err, "Product")
	}
	return nil
}

func toProductImages(inputs []ProductImageInput) datatypes.JSONSlice[models.ProductImage] {
	images := make([]models.ProductImage, 0, len(inputs))
	for _, in := range inputs {
		images = append(images, models.ProductImage{
			URL:       in.URL,
			PublicID:  in.PublicID,
			Alt:       in.Alt,
			IsPrimary: in.IsPrimary,
		})
	}
	return datatypes.JSONSlice[models.ProductImage](images)
}
