package models

import (
	"time"

	"gorm.io/datatypes"
)

// Blog 博客文章模型
type Blog struct {
	BaseModel
	Title            string                      `json:"title" gorm:"not null;size:200"`
	Slug             string                      `json:"slug" gorm:"uniqueIndex;not null;size:250"`
	Excerpt          string                      `json:"excerpt" gorm:"not null;size:500"`
	Content          string                      `json:"content" gorm:"not null;type:text"`
	FeaturedImage    string                      `json:"featured_image" gorm:"size:255"`
	ReadTime         int                         `json:"read_time" gorm:"default:0"`
	Images           datatypes.JSONSlice[string] `json:"images" gorm:"type:jsonb"`
	Tags             datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb"`
	Status           string                      `json:"status" gorm:"default:'draft';size:20;index"`
	PublishDate      *time.Time                  `json:"publish_date"`
	IsFeatured       bool                        `json:"is_featured" gorm:"default:false"`
	Views            int64                       `json:"views" gorm:"default:0"`
	SeoTitle         string                      `json:"seo_title" gorm:"size:200"`
	SeoDescription   string                      `json:"seo_description" gorm:"size:500"`
	SeoKeywords      datatypes.JSONSlice[string] `json:"seo_keywords" gorm:"type:jsonb"`
	AuthorID         uint                        `json:"author_id" gorm:"not null;index"`
	Author           *Admin                      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	LastModifiedByID *uint                       `json:"last_modified_by_id"`
	LastModifiedBy   *Admin                      `json:"last_modified_by,omitempty" gorm:"foreignKey:LastModifiedByID"`
}

// TableName 表名
func (b *Blog) TableName() string {
	return "blogs"
}

// 博客状态常量
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
	BlogStatusArchived  = "archived"
)
