package models

import "time"

// GalleryImage 图库资源模型
type GalleryImage struct {
	BaseModel
	URL          string     `json:"url" gorm:"not null;size:255"`
	PublicID     string     `json:"public_id" gorm:"not null;size:255;index"`
	IsActive     bool       `json:"is_active" gorm:"default:true;index"`
	IsFeatured   bool       `json:"is_featured" gorm:"default:false"`
	SortOrder    int        `json:"sort_order" gorm:"default:0"`
	UsageCount   int64      `json:"usage_count" gorm:"default:0"`
	LastUsedAt   *time.Time `json:"last_used_at"`
	UploadedByID uint       `json:"uploaded_by_id" gorm:"not null"`
	UploadedBy   *Admin     `json:"uploaded_by,omitempty" gorm:"foreignKey:UploadedByID"`
}

// TableName 表名
func (g *GalleryImage) TableName() string {
	return "gallery_images"
}
