package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// PermissionGrant 权限授予项：模块 + 允许的操作集合
type PermissionGrant struct {
	Module  string   `json:"module"`
	Actions []string `json:"actions"`
}

// Admin 管理员模型
type Admin struct {
	BaseModel
	Name         string                                 `json:"name" gorm:"not null;size:100"`
	Email        string                                 `json:"email" gorm:"unique;not null;size:100;index"`
	PasswordHash string                                 `json:"-" gorm:"not null;size:255"`
	Role         string                                 `json:"role" gorm:"not null;default:'editor';size:20"`
	Permissions  datatypes.JSONSlice[PermissionGrant]   `json:"permissions" gorm:"type:jsonb"`
	IsActive     bool                                   `json:"is_active" gorm:"default:true"`
	LastLoginAt  *time.Time                             `json:"last_login_at"`
	CreatedByID  *uint                                  `json:"created_by_id"`
	CreatedBy    *Admin                                 `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

// TableName 表名
func (a *Admin) TableName() string {
	return "admins"
}

// 角色常量
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
)

// 权限模块常量
const (
	ModuleProducts   = "products"
	ModuleCategories = "categories"
	ModuleDealers    = "dealers"
	ModuleBlogs      = "blogs"
	ModuleGallery    = "gallery"
	ModuleAdmins     = "admins"
)

// 权限操作常量
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// AllModules 所有可授权模块
var AllModules = []string{
	ModuleProducts,
	ModuleCategories,
	ModuleDealers,
	ModuleBlogs,
	ModuleGallery,
	ModuleAdmins,
}

// AllActions 所有可授权操作
var AllActions = []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// SetPassword 设置密码
func (a *Admin) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码
func (a *Admin) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}
