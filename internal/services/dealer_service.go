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

// CreateDealerRequest 创建经销商请求
type CreateDealerRequest struct {
	Name           string              `json:"name" binding:"required,min=2,max=100"`
	ShopName       string              `json:"shop_name" binding:"required,min=2,max=100"`
	OwnerName      string              `json:"owner_name" binding:"max=50"`
	Email          string              `json:"email" binding:"omitempty,email"`
	Phone          string              `json:"phone" binding:"required,min=7,max=20"`
	AlternatePhone string              `json:"alternate_phone" binding:"max=20"`
	Whatsapp       string              `json:"whatsapp" binding:"max=20"`
	Location       string              `json:"location" binding:"max=200"`
	SocialLinks    *models.SocialLinks `json:"social_links"`
	Images         []string            `json:"images" binding:"omitempty,dive,url"`
	Rating         *float64            `json:"rating" binding:"omitempty,min=0,max=5"`
	IsActive       *bool               `json:"is_active"`
	IsVerified     bool                `json:"is_verified"`
	IsFeatured     bool                `json:"is_featured"`
	Notes          string              `json:"notes"`
}

// UpdateDealerRequest 更新经销商请求
type UpdateDealerRequest struct {
	Name           *string             `json:"name" binding:"omitempty,min=2,max=100"`
	ShopName       *string             `json:"shop_name" binding:"omitempty,min=2,max=100"`
	OwnerName      *string             `json:"owner_name" binding:"omitempty,max=50"`
	Email          *string             `json:"email" binding:"omitempty,email"`
	Phone          *string             `json:"phone" binding:"omitempty,min=7,max=20"`
	AlternatePhone *string             `json:"alternate_phone" binding:"omitempty,max=20"`
	Whatsapp       *string             `json:"whatsapp" binding:"omitempty,max=20"`
	Location       *string             `json:"location" binding:"omitempty,max=200"`
	SocialLinks    *models.SocialLinks `json:"social_links"`
	Images         []string            `json:"images" binding:"omitempty,dive,url"`
	Rating         *float64            `json:"rating" binding:"omitempty,min=0,max=5"`
	IsActive       *bool               `json:"is_active"`
	IsVerified     *bool               `json:"is_verified"`
	IsFeatured     *bool               `json:"is_featured"`
	LastContactAt  *time.Time          `json:"last_contact_at"`
	Notes          *string             `json:"notes"`
}

// DealerFilter 经销商列表过滤条件
type DealerFilter struct {
	IsActive   *bool
	IsVerified *bool
	IsFeatured *bool
	Location   string
}

// DealerService 经销商服务
type DealerService struct {
	db    *gorm.DB
	slugs *SlugGenerator
}

// NewDealerService 创建经销商服务实例
func NewDealerService() *DealerService {
	db := database.GetDB()
	return &DealerService{
		db:    db,
		slugs: NewSlugGenerator(db),
	}
}

// 经销商可排序列白名单
var dealerSortable = map[string]bool{
	"name":       true,
	"shop_name":  true,
	"rating":     true,
	"join_date":  true,
	"created_at": true,
}

func (s *DealerService) filtered(filter *DealerFilter) *gorm.DB {
	query := s.db.Model(&models.Dealer{})
	if filter == nil {
		return query
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	return query
}

// List 分页查询经销商（管理端）
func (s *DealerService) List(q *ListQuery, filter *DealerFilter) ([]models.Dealer, *pagination.PageInfo, error) {
	query := s.filtered(filter)
	query = applySearch(query, q.Search, []string{"name", "shop_name", "owner_name", "location"})
	query = applySort(query, q.SortBy, q.SortOrder, dealerSortable, "created_at")

	var dealers []models.Dealer
	pageInfo, err := paginate(query, q.Page, q.Limit, &dealers)
	if err != nil {
		return nil, nil, errors.From(err, "Dealer")
	}
	return dealers, pageInfo, nil
}

// ListPublic 公开分页查询，仅返回启用经销商的公开视图
func (s *DealerService) ListPublic(q *ListQuery, filter *DealerFilter) ([]*models.DealerPublicView, *pagination.PageInfo, error) {
	if filter == nil {
		filter = &DealerFilter{}
	}
	active := true
	filter.IsActive = &active

	query := s.filtered(filter)
	query = applySearch(query, q.Search, []string{"name", "shop_name", "location"})
	query = applySort(query, q.SortBy, q.SortOrder, dealerSortable, "rating")

	var dealers []models.Dealer
	pageInfo, err := paginate(query, q.Page, q.Limit, &dealers)
	if err != nil {
		return nil, nil, errors.From(err, "Dealer")
	}

	views := make([]*models.DealerPublicView, 0, len(dealers))
	for i := range dealers {
		views = append(views, dealers[i].ToPublicView())
	}
	return views, pageInfo, nil
}

// Featured 公开查询推荐经销商
func (s *DealerService) Featured(limit int) ([]*models.DealerPublicView, error) {
	if limit <= 0 || limit > 20 {
		limit = 6
	}
	var dealers []models.Dealer
	err := s.db.
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("rating DESC, created_at DESC").
		Limit(limit).
		Find(&dealers).Error
	if err != nil {
		return nil, errors.From(err, "Dealer")
	}

	views := make([]*models.DealerPublicView, 0, len(dealers))
	for i := range dealers {
		views = append(views, dealers[i].ToPublicView())
	}
	return views, nil
}

// GetByID 按ID查询经销商（管理端，含内部字段）
func (s *DealerService) GetByID(id uint) (*models.Dealer, error) {
	var dealer models.Dealer
	if err := s.db.First(&dealer, id).Error; err != nil {
		return nil, errors.From(err, "Dealer")
	}
	return &dealer, nil
}

// GetBySlug 公开按slug查询启用经销商的公开视图
func (s *DealerService) GetBySlug(slug string) (*models.DealerPublicView, error) {
	var dealer models.Dealer
	err := s.db.Where("slug = ? AND is_active = ?", slug, true).First(&dealer).Error
	if err != nil {
		return nil, errors.From(err, "Dealer")
	}
	return dealer.ToPublicView(), nil
}

// Create 创建经销商。slug由店名派生。
func (s *DealerService) Create(actorID uint, req *CreateDealerRequest) (*models.Dealer, error) {
	slug, err := s.slugs.Generate(&models.Dealer{}, req.ShopName, 0)
	if err != nil {
		return nil, err
	}

	dealer := &models.Dealer{
		Name:           req.Name,
		Slug:           slug,
		ShopName:       req.ShopName,
		OwnerName:      req.OwnerName,
		Email:          req.Email,
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
		Whatsapp:       req.Whatsapp,
		Location:       req.Location,
		Images:         datatypes.JSONSlice[string](req.Images),
		IsActive:       true,
		IsVerified:     req.IsVerified,
		IsFeatured:     req.IsFeatured,
		Notes:          req.Notes,
		CreatedByID:    &actorID,
	}
	if req.SocialLinks != nil {
		dealer.SocialLinks = datatypes.NewJSONType(*req.SocialLinks)
	}
	if req.Rating != nil {
		dealer.Rating = *req.Rating
	}
	if req.IsActive != nil {
		dealer.IsActive = *req.IsActive
	}

	if err := s.db.Create(dealer).Error; err != nil {
		if appErr := errors.From(err, "Dealer"); appErr.Code == errors.CodeConflict {
			return nil, errors.NewConflict("slug", slug)
		}
		logger.GetLogger().Errorf("创建经销商失败: %v", err)
		return nil, errors.From(err, "Dealer")
	}
	return dealer, nil
}

// Update 更新经销商。店名变化时重新派生slug。
func (s *DealerService) Update(actorID, id uint, req *UpdateDealerRequest) (*models.Dealer, error) {
	dealer, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.ShopName != nil && *req.ShopName != dealer.ShopName {
		slug, err := s.slugs.Generate(&models.Dealer{}, *req.ShopName, id)
		if err != nil {
			return nil, err
		}
		dealer.ShopName = *req.ShopName
		dealer.Slug = slug
	}
	if req.Name != nil {
		dealer.Name = *req.Name
	}
	if req.OwnerName != nil {
		dealer.OwnerName = *req.OwnerName
	}
	if req.Email != nil {
		dealer.Email = *req.Email
	}
	if req.Phone != nil {
		dealer.Phone = *req.Phone
	}
	if req.AlternatePhone != nil {
		dealer.AlternatePhone = *req.AlternatePhone
	}
	if req.Whatsapp != nil {
		dealer.Whatsapp = *req.Whatsapp
	}
	if req.Location != nil {
		dealer.Location = *req.Location
	}
	if req.SocialLinks != nil {
		dealer.SocialLinks = datatypes.NewJSONType(*req.SocialLinks)
	}
	if req.Images != nil {
		dealer.Images = datatypes.JSONSlice[string](req.Images)
	}
	if req.Rating != nil {
		dealer.Rating = *req.Rating
	}
	if req.IsActive != nil {
		dealer.IsActive = *req.IsActive
	}
	if req.IsVerified != nil {
		dealer.IsVerified = *req.IsVerified
	}
	if req.IsFeatured != nil {
		dealer.IsFeatured = *req.IsFeatured
	}
	if req.LastContactAt != nil {
		dealer.LastContactAt = req.LastContactAt
	}
	if req.Notes != nil {
		dealer.Notes = *req.Notes
	}
	dealer.UpdatedByID = &actorID

	if err := s.db.Save(dealer).Error; err != nil {
		logger.GetLogger().Errorf("更新经销商失败: %v", err)
		return nil, errors.From(err, "Dealer")
	}
	return dealer, nil
}

// ToggleStatus 切换启用状态
func (s *DealerService) ToggleStatus(actorID, id uint) (*models.Dealer, error) {
	dealer, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	dealer.IsActive = !dealer.IsActive
	dealer.UpdatedByID = &actorID
	if err := s.db.Save(dealer).Error; err != nil {
		return nil, errors.From(err, "Dealer")
	}
	return dealer, nil
}

// ToggleVerified 切换认证标记
func (s *DealerService) ToggleVerified(actorID, id uint) (*models.Dealer, error) {
	dealer, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	dealer.IsVerified = !dealer.IsVerified
	dealer.UpdatedByID = &actorID
	if err := s.db.Save(dealer).Error; err != nil {
		return nil, errors.From(err, "Dealer")
	}
	return dealer, nil
}

// ToggleFeatured 切换推荐标记
func (s *DealerService) ToggleFeatured(actorID, id uint) (*models.Dealer, error) {
	dealer, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	dealer.IsFeatured = !dealer.IsFeatured
	dealer.UpdatedByID = &actorID
	if err := s.db.Save(dealer).Error; err != nil {
		return nil, errors.From(err, "Dealer")
	}
	return dealer, nil
}

// Delete 删除经销商
func (s *DealerService) Delete(id uint) error {
	dealer, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(dealer).Error; err != nil {
		logger.GetLogger().Errorf("删除经销商失败: %v", err)
		return errors.From(err, "Dealer")
	}
	return nil
}
