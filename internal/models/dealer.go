package models

import (
	"time"

	"gorm.io/datatypes"
)

// SocialLinks 经销商社交媒体链接
type SocialLinks struct {
	Facebook string `json:"facebook"`
	Website  string `json:"website"`
	Youtube  string `json:"youtube"`
}

// Dealer 经销商模型
type Dealer struct {
	BaseModel
	Name           string                             `json:"name" gorm:"not null;size:100"`
	Slug           string                             `json:"slug" gorm:"uniqueIndex;not null;size:150"`
	ShopName       string                             `json:"shop_name" gorm:"not null;size:100"`
	OwnerName      string                             `json:"owner_name" gorm:"size:50"`
	Email          string                             `json:"email" gorm:"size:100"`
	Phone          string                             `json:"phone" gorm:"not null;size:20"`
	AlternatePhone string                             `json:"alternate_phone" gorm:"size:20"`
	Whatsapp       string                             `json:"whatsapp" gorm:"size:20"`
	Location       string                             `json:"location" gorm:"size:200;index"`
	SocialLinks    datatypes.JSONType[SocialLinks]    `json:"social_links" gorm:"type:jsonb"`
	Images         datatypes.JSONSlice[string]        `json:"images" gorm:"type:jsonb"`
	Rating         float64                            `json:"rating" gorm:"default:0"`
	IsActive       bool                               `json:"is_active" gorm:"default:true;index"`
	IsVerified     bool                               `json:"is_verified" gorm:"default:false"`
	IsFeatured     bool                               `json:"is_featured" gorm:"default:false"`
	JoinDate       time.Time                          `json:"join_date" gorm:"autoCreateTime"`
	LastContactAt  *time.Time                         `json:"last_contact_at"`
	Notes          string                             `json:"notes,omitempty" gorm:"type:text"`
	CreatedByID    *uint                              `json:"created_by_id"`
	CreatedBy      *Admin                             `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	UpdatedByID    *uint                              `json:"updated_by_id"`
	UpdatedBy      *Admin                             `json:"updated_by,omitempty" gorm:"foreignKey:UpdatedByID"`
}

// TableName 表名
func (d *Dealer) TableName() string {
	return "dealers"
}

// PublicView 公开视图，隐藏管理字段
type DealerPublicView struct {
	BaseModel
	Name           string                          `json:"name"`
	Slug           string                          `json:"slug"`
	ShopName       string                          `json:"shop_name"`
	OwnerName      string                          `json:"owner_name"`
	Email          string                          `json:"email"`
	Phone          string                          `json:"phone"`
	AlternatePhone string                          `json:"alternate_phone"`
	Whatsapp       string                          `json:"whatsapp"`
	Location       string                          `json:"location"`
	SocialLinks    datatypes.JSONType[SocialLinks] `json:"social_links"`
	Images         datatypes.JSONSlice[string]     `json:"images"`
	Rating         float64                         `json:"rating"`
	IsVerified     bool                            `json:"is_verified"`
	IsFeatured     bool                            `json:"is_featured"`
	JoinDate       time.Time                       `json:"join_date"`
}

// ToPublicView 转换为公开视图
func (d *Dealer) ToPublicView() *DealerPublicView {
	return &DealerPublicView{
		BaseModel:      d.BaseModel,
		Name:           d.Name,
		Slug:           d.Slug,
		ShopName:       d.ShopName,
		OwnerName:      d.OwnerName,
		Email:          d.Email,
		Phone:          d.Phone,
		AlternatePhone: d.AlternatePhone,
		Whatsapp:       d.Whatsapp,
		Location:       d.Location,
		SocialLinks:    d.SocialLinks,
		Images:         d.Images,
		Rating:         d.Rating,
		IsVerified:     d.IsVerified,
		IsFeatured:     d.IsFeatured,
		JoinDate:       d.JoinDate,
	}
}
