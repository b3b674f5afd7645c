package services

import (
	"vaatco/internal/database"
	"vaatco/internal/models"
	"vaatco/pkg/errors"
	"vaatco/pkg/logger"
	"vaatco/pkg/pagination"

	"gorm.io/gorm"
)

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=500"`
	ParentID    *uint  `json:"parent_id"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=50"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	ParentID    *uint   `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

// CategoryService 分类服务
type CategoryService struct {
	db    *gorm.DB
	slugs *SlugGenerator
}

// NewCategoryService 创建分类服务实例
func NewCategoryService() *CategoryService {
	db := database.GetDB()
	return &CategoryService{
		db:    db,
		slugs: NewSlugGenerator(db),
	}
}

// List 分页查询分类（管理端）
func (s *CategoryService) List(q *ListQuery, isActive *bool) ([]models.Category, *pagination.PageInfo, error) {
	query := s.db.Model(&models.Category{})
	query = applySearch(query, q.Search, []string{"name", "description"})
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	query = applySort(query, q.SortBy, q.SortOrder,
		map[string]bool{"name": true, "sort_order": true, "created_at": true}, "sort_order ASC, created_at")

	var categories []models.Category
	pageInfo, err := paginate(query.Preload("Parent"), q.Page, q.Limit, &categories)
	if err != nil {
		return nil, nil, errors.From(err, "Category")
	}
	return categories, pageInfo, nil
}

// ListActive 公开查询启用的分类，按排序权重排列
func (s *CategoryService) ListActive() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, errors.From(err, "Category")
	}
	return categories, nil
}

// GetByID 按ID查询分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Parent").First(&category, id).Error; err != nil {
		return nil, errors.From(err, "Category")
	}
	return &category, nil
}

// GetBySlug 按slug查询分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, errors.From(err, "Category")
	}
	return &category, nil
}

// Create 创建分类
func (s *CategoryService) Create(actorID uint, req *CreateCategoryRequest) (*models.Category, error) {
	slug, err := s.slugs.Generate(&models.Category{}, req.Name, 0)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.GetByID(*req.ParentID); err != nil {
			return nil, errors.NewBadRequest("Parent category not found")
		}
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    true,
		SortOrder:   req.SortOrder,
		CreatedByID: &actorID,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.Create(category).Error; err != nil {
		if appErr := errors.From(err, "Category"); appErr.Code == errors.CodeConflict {
			return nil, errors.NewConflict("slug", slug)
		}
		logger.GetLogger().Errorf("创建分类失败: %v", err)
		return nil, errors.From(err, "Category")
	}
	return category, nil
}

// Update 更新分类。名称变化时重新派生slug。
func (s *CategoryService) Update(actorID, id uint, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		slug, err := s.slugs.Generate(&models.Category{}, *req.Name, id)
		if err != nil {
			return nil, err
		}
		category.Name = *req.Name
		category.Slug = slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, errors.NewBadRequest("Category cannot be its own parent")
		}
		if _, err := s.GetByID(*req.ParentID); err != nil {
			return nil, errors.NewBadRequest("Parent category not found")
		}
		category.ParentID = req.ParentID
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	category.UpdatedByID = &actorID

	if err := s.db.Save(category).Error; err != nil {
		logger.GetLogger().Errorf("更新分类失败: %v", err)
		return nil, errors.From(err, "Category")
	}
	return category, nil
}

// Delete 删除分类。仍被产品引用的分类不允许删除。
func (s *CategoryService) Delete(id uint) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return errors.From(err, "Category")
	}
	if productCount > 0 {
		return errors.NewBadRequest("Cannot delete category with associated products")
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
		return errors.From(err, "Category")
	}
	if childCount > 0 {
		return errors.NewBadRequest("Cannot delete category with sub-categories")
	}

	if err := s.db.Delete(category).Error; err != nil {
		logger.GetLogger().Errorf("删除分类失败: %v", err)
		return errors.From(err, "Category")
	}
	return nil
}
