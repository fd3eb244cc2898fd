package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
}

type Product struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string     `gorm:"not null" json:"name"`
	Slug             string     `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"short_description"`
	Price            float64    `gorm:"not null" json:"price"`
	CategoryID       *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	ImageURL         string     `json:"image_url"`
	IsVegan          bool       `gorm:"default:false" json:"is_vegan"`
	IsFeatured       bool       `gorm:"default:false" json:"is_featured"`
	IsAvailable      bool       `gorm:"default:true" json:"is_available"`
	RequiresDeposit  bool       `gorm:"default:false" json:"requires_deposit"`
	DepositPercent   int        `gorm:"default:50" json:"deposit_percent"`
	LeadTimeDays     int        `gorm:"default:1" json:"lead_time_days"`
	Servings         string     `json:"servings,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	AuthorName string    `gorm:"not null" json:"author_name"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
