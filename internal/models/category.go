package models

// Category 产品分类模型
type Category struct {
	BaseModel
	Name        string    `json:"name" gorm:"not null;size:50"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description" gorm:"size:500"`
	ParentID    *uint     `json:"parent_id"`
	Parent      *Category `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedByID *uint     `json:"created_by_id"`
	CreatedBy   *Admin    `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	UpdatedByID *uint     `json:"updated_by_id"`
	UpdatedBy   *Admin    `json:"updated_by,omitempty" gorm:"foreignKey:UpdatedByID"`
}

// TableName 表名
func (c *Category) TableName() string {
	return "categories"
}
