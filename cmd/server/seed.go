package main

import (
	"fmt"

	"vaatco/internal/database"
	"vaatco/internal/models"
	"vaatco/pkg/config"
	"vaatco/pkg/logger"

	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	if err := createDefaultSuperAdmin(db); err != nil {
		return fmt.Errorf("创建默认超级管理员失败: %v", err)
	}

	if err := createDefaultCategories(db); err != nil {
		return fmt.Errorf("创建默认分类失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultSuperAdmin 创建默认超级管理员，已有super_admin则跳过
func createDefaultSuperAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&models.Admin{}).Where("role = ?", models.RoleSuperAdmin).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("超级管理员已存在，跳过创建")
		return nil
	}

	cfg := config.GetConfig()
	email := cfg.Seed.AdminEmail
	password := cfg.Seed.AdminPassword

	admin := &models.Admin{
		Name:     "Super Admin",
		Email:    email,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Infof("默认超级管理员创建成功: %s", email)
	return nil
}

// createDefaultCategories 创建默认产品分类
func createDefaultCategories(db *gorm.DB) error {
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	defaults := []models.Category{
		{Name: "Engine Oils", Slug: "engine-oils", IsActive: true, SortOrder: 1},
		{Name: "Gear Oils", Slug: "gear-oils", IsActive: true, SortOrder: 2},
		{Name: "Greases", Slug: "greases", IsActive: true, SortOrder: 3},
		{Name: "Coolants", Slug: "coolants", IsActive: true, SortOrder: 4},
	}

	for i := range defaults {
		if err := db.Create(&defaults[i]).Error; err != nil {
			return err
		}
	}

	logger.GetLogger().Info("默认分类创建成功")
	return nil
}
