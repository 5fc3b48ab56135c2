package model

import (
	"time"
)

type ProductCategory string

const (
	CategoryFaceCare ProductCategory = "gezichtsverzorging"
	CategoryBodyCare ProductCategory = "lichaamsverzorging"
)

// Product ids are slugs ("honingbalsem") shared with the storefront catalog
type Product struct {
	ID          string          `gorm:"primaryKey;size:64" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Subtitle    string          `json:"subtitle"`
	Description string          `gorm:"type:text" json:"description"`
	Ingredients []string        `gorm:"type:text;serializer:json" json:"ingredients"`
	Benefits    []string        `gorm:"type:text;serializer:json" json:"benefits"`
	Usage       string          `gorm:"type:text" json:"usage"`
	Price       float64         `gorm:"not null" json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    ProductCategory `gorm:"type:varchar(50);index" json:"category"`
	InStock     bool            `gorm:"not null" json:"in_stock"`
	Position    int             `gorm:"not null;default:0;index" json:"-"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

func (Product) TableName() string {
	return "products"
}
