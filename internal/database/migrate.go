package database

import (
	"vaatco/internal/models"
	"vaatco/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Dealer{},
		&models.Blog{},
		&models.GalleryImage{},
	)
	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}
