package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"unique;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type Company struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"unique;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"not null;index"`
	CategoryID uint           `json:"category_id"`
	Category   Category       `json:"category" gorm:"foreignKey:CategoryID"`
	CompanyID  uint           `json:"company_id"`
	Company    Company        `json:"company" gorm:"foreignKey:CompanyID"`
	Tags       []Tag          `json:"tags" gorm:"many2many:product_tags"`
	Colors     []string       `json:"colors" gorm:"type:jsonb;serializer:json"`
	Sizes      []string       `json:"sizes" gorm:"type:jsonb;serializer:json"`
	UnitPrice  float64        `json:"unit_price" gorm:"not null"`
	Stock      int            `json:"stock"`
	Image      string         `json:"image"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
