package services

import (
	"time"

	"vaatco/internal/database"
	"vaatco/internal/models"
	"vaatco/pkg/errors"
	"vaatco/pkg/jwt"
	"vaatco/pkg/logger"
	"vaatco/pkg/pagination"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expires_in"`
	Admin     *models.Admin `json:"admin"`
}

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Name        string                   `json:"name" binding:"required,min=2,max=100"`
	Email       string                   `json:"email" binding:"required,email"`
	Password    string                   `json:"password" binding:"required,min=8"`
	Role        string                   `json:"role" binding:"omitempty,oneof=admin editor"`
	Permissions []models.PermissionGrant `json:"permissions"`
}

// UpdateAdminRequest 更新管理员请求
type UpdateAdminRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role" binding:"omitempty,oneof=admin editor"`
}

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdatePermissionsRequest 更新权限请求
type UpdatePermissionsRequest struct {
	Permissions []models.PermissionGrant `json:"permissions" binding:"required"`
}

// DashboardStats 管理端首页统计
type DashboardStats struct {
	TotalProducts   int64 `json:"total_products"`
	ActiveProducts  int64 `json:"active_products"`
	TotalDealers    int64 `json:"total_dealers"`
	ActiveDealers   int64 `json:"active_dealers"`
	TotalBlogs      int64 `json:"total_blogs"`
	PublishedBlogs  int64 `json:"published_blogs"`
	TotalImages     int64 `json:"total_images"`
	TotalAdmins     int64 `json:"total_admins"`
	TotalViews      int64 `json:"total_views"`
}

// AdminService 管理员服务
type AdminService struct {
	db *gorm.DB
}

// NewAdminService 创建管理员服务实例
func NewAdminService() *AdminService {
	return &AdminService{db: database.GetDB()}
}

// normalizePermissions 过滤无效的模块与操作，丢弃空授权项
func normalizePermissions(grants []models.PermissionGrant) []models.PermissionGrant {
	validModule := make(map[string]bool, len(models.AllModules))
	for _, m := range models.AllModules {
		validModule[m] = true
	}
	validAction := make(map[string]bool, len(models.AllActions))
	for _, a := range models.AllActions {
		validAction[a] = true
	}

	normalized := make([]models.PermissionGrant, 0, len(grants))
	for _, grant := range grants {
		if !validModule[grant.Module] {
			continue
		}
		actions := make([]string, 0, len(grant.Actions))
		seen := map[string]bool{}
		for _, action := range grant.Actions {
			if validAction[action] && !seen[action] {
				actions = append(actions, action)
				seen[action] = true
			}
		}
		if len(actions) > 0 {
			normalized = append(normalized, models.PermissionGrant{
				Module:  grant.Module,
				Actions: actions,
			})
		}
	}
	return normalized
}

// Login 登录验证，成功后签发JWT并刷新最近登录时间。
// 账户不存在与密码错误返回同一错误，避免探测邮箱。
func (s *AdminService) Login(req *LoginRequest) (*LoginResponse, error) {
	var admin models.Admin
	if err := s.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		return nil, errors.NewUnauthorized("Invalid email or password")
	}
	if !admin.CheckPassword(req.Password) {
		return nil, errors.NewUnauthorized("Invalid email or password")
	}
	if !admin.IsActive {
		return nil, errors.NewForbidden("Account has been deactivated")
	}

	manager := jwt.GetJWTManager()
	token, err := manager.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		logger.GetLogger().Errorf("签发令牌失败: %v", err)
		return nil, errors.NewInternal()
	}

	now := time.Now()
	if err := s.db.Model(&admin).Update("last_login_at", now).Error; err != nil {
		logger.GetLogger().Warnf("更新登录时间失败: %v", err)
	}
	admin.LastLoginAt = &now

	return &LoginResponse{
		Token:     token,
		ExpiresIn: int64(manager.GetTokenDuration().Seconds()),
		Admin:     &admin,
	}, nil
}

// GetByID 按ID查询管理员
func (s *AdminService) GetByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.Preload("CreatedBy").First(&admin, id).Error; err != nil {
		return nil, errors.From(err, "Admin")
	}
	return &admin, nil
}

// List 分页查询管理员
func (s *AdminService) List(q *ListQuery, role string, isActive *bool) ([]models.Admin, *pagination.PageInfo, error) {
	query := s.db.Model(&models.Admin{})
	query = applySearch(query, q.Search, []string{"name", "email"})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	query = applySort(query, q.SortBy, q.SortOrder,
		map[string]bool{"name": true, "email": true, "created_at": true, "last_login_at": true}, "created_at")

	var admins []models.Admin
	pageInfo, err := paginate(query.Preload("CreatedBy"), q.Page, q.Limit, &admins)
	if err != nil {
		return nil, nil, errors.From(err, "Admin")
	}
	return admins, pageInfo, nil
}

// Create 创建管理员。角色缺省为editor，权限经白名单归一化。
func (s *AdminService) Create(actorID uint, req *CreateAdminRequest) (*models.Admin, error) {
	var count int64
	if err := s.db.Model(&models.Admin{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, errors.From(err, "Admin")
	}
	if count > 0 {
		return nil, errors.NewConflict("email", req.Email)
	}

	role := req.Role
	if role == "" {
		role = models.RoleEditor
	}

	admin := &models.Admin{
		Name:        req.Name,
		Email:       req.Email,
		Role:        role,
		Permissions: datatypes.JSONSlice[models.PermissionGrant](normalizePermissions(req.Permissions)),
		IsActive:    true,
		CreatedByID: &actorID,
	}
	if err := admin.SetPassword(req.Password); err != nil {
		return nil, errors.NewInternal()
	}

	if err := s.db.Create(admin).Error; err != nil {
		if appErr := errors.From(err, "Admin"); appErr.Code == errors.CodeConflict {
			return nil, errors.NewConflict("email", req.Email)
		}
		logger.GetLogger().Errorf("创建管理员失败: %v", err)
		return nil, errors.From(err, "Admin")
	}
	return admin, nil
}

// Update 更新管理员基础信息
func (s *AdminService) Update(id uint, req *UpdateAdminRequest) (*models.Admin, error) {
	admin, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != admin.Email {
		var count int64
		if err := s.db.Model(&models.Admin{}).
			Where("email = ? AND id <> ?", *req.Email, id).
			Count(&count).Error; err != nil {
			return nil, errors.From(err, "Admin")
		}
		if count > 0 {
			return nil, errors.NewConflict("email", *req.Email)
		}
		admin.Email = *req.Email
	}
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Role != nil {
		admin.Role = *req.Role
	}

	if err := s.db.Save(admin).Error; err != nil {
		logger.GetLogger().Errorf("更新管理员失败: %v", err)
		return nil, errors.From(err, "Admin")
	}
	return admin, nil
}

// UpdateProfile 更新个人资料
func (s *AdminService) UpdateProfile(id uint, req *UpdateProfileRequest) (*models.Admin, error) {
	admin, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		admin.Name = *req.Name
	}
	if err := s.db.Save(admin).Error; err != nil {
		return nil, errors.From(err, "Admin")
	}
	return admin, nil
}

// ChangePassword 修改自己的密码，需验证当前密码
func (s *AdminService) ChangePassword(id uint, req *ChangePasswordRequest) error {
	admin, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if !admin.CheckPassword(req.CurrentPassword) {
		return errors.NewBadRequest("Current password is incorrect")
	}
	if err := admin.SetPassword(req.NewPassword); err != nil {
		return errors.NewInternal()
	}

	if err := s.db.Model(admin).Update("password_hash", admin.PasswordHash).Error; err != nil {
		logger.GetLogger().Errorf("修改密码失败: %v", err)
		return errors.From(err, "Admin")
	}
	return nil
}

// UpdatePermissions 替换管理员的授权集
func (s *AdminService) UpdatePermissions(id uint, req *UpdatePermissionsRequest) (*models.Admin, error) {
	admin, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	admin.Permissions = datatypes.JSONSlice[models.PermissionGrant](normalizePermissions(req.Permissions))
	if err := s.db.Save(admin).Error; err != nil {
		logger.GetLogger().Errorf("更新权限失败: %v", err)
		return nil, errors.From(err, "Admin")
	}
	return admin, nil
}

// ToggleStatus 切换启停状态
func (s *AdminService) ToggleStatus(id uint) (*models.Admin, error) {
	admin, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	admin.IsActive = !admin.IsActive
	if err := s.db.Save(admin).Error; err != nil {
		return nil, errors.From(err, "Admin")
	}
	return admin, nil
}

// DashboardStats 汇总各实体的总量与状态分布
func (s *AdminService) DashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		model interface{}
		where []interface{}
	}{
		{&stats.TotalProducts, &models.Product{}, nil},
		{&stats.ActiveProducts, &models.Product{}, []interface{}{"is_active = ?", true}},
		{&stats.TotalDealers, &models.Dealer{}, nil},
		{&stats.ActiveDealers, &models.Dealer{}, []interface{}{"is_active = ?", true}},
		{&stats.TotalBlogs, &models.Blog{}, nil},
		{&stats.PublishedBlogs, &models.Blog{}, []interface{}{"status = ?", models.BlogStatusPublished}},
		{&stats.TotalImages, &models.GalleryImage{}, nil},
		{&stats.TotalAdmins, &models.Admin{}, nil},
	}
	for _, c := range counts {
		query := s.db.Model(c.model)
		if c.where != nil {
			query = query.Where(c.where[0], c.where[1:]...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, errors.From(err, "Stats")
		}
	}

	var productViews, blogViews int64
	if err := s.db.Model(&models.Product{}).Select("COALESCE(SUM(views), 0)").Scan(&productViews).Error; err != nil {
		return nil, errors.From(err, "Stats")
	}
	if err := s.db.Model(&models.Blog{}).Select("COALESCE(SUM(views), 0)").Scan(&blogViews).Error; err != nil {
		return nil, errors.From(err, "Stats")
	}
	stats.TotalViews = productViews + blogViews

	return stats, nil
}

// Delete 删除管理员
func (s *AdminService) Delete(id uint) error {
	admin, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(admin).Error; err != nil {
		logger.GetLogger().Errorf("删除管理员失败: %v", err)
		return errors.From(err, "Admin")
	}
	return nil
}
