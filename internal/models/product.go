package models

import (
	"gorm.io/datatypes"
)

// ProductImage 产品图片，来源于图库
type ProductImage struct {
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"is_primary"`
}

// Product 产品模型
type Product struct {
	BaseModel
	Name             string                             `json:"name" gorm:"not null;size:100"`
	Slug             string                             `json:"slug" gorm:"uniqueIndex;not null;size:150"`
	Description      string                             `json:"description" gorm:"not null;type:text"`
	ShortDescription string                             `json:"short_description" gorm:"size:500"`
	CategoryID       uint                               `json:"category_id" gorm:"not null;index"`
	Category         *Category                          `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images           datatypes.JSONSlice[ProductImage]  `json:"images" gorm:"type:jsonb"`
	IsActive         bool                               `json:"is_active" gorm:"default:true;index"`
	IsFeatured       bool                               `json:"is_featured" gorm:"default:false"`
	SortOrder        int                                `json:"sort_order" gorm:"default:0"`
	Views            int64                              `json:"views" gorm:"default:0"`
	SeoTitle         string                             `json:"seo_title" gorm:"size:200"`
	SeoDescription   string                             `json:"seo_description" gorm:"size:500"`
	SeoKeywords      datatypes.JSONSlice[string]        `json:"seo_keywords" gorm:"type:jsonb"`
	CreatedByID      *uint                              `json:"created_by_id"`
	CreatedBy        *Admin                             `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	UpdatedByID      *uint                              `json:"updated_by_id"`
	UpdatedBy        *Admin                             `json:"updated_by,omitempty" gorm:"foreignKey:UpdatedByID"`
}

// TableName 表名
func (p *Product) TableName() string {
	return "products"
}
