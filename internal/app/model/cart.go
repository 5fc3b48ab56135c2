package model

import (
	"time"
)

// Cart is an anonymous cart keyed by a random id. There are no accounts;
// whoever holds the id owns the cart.
type Cart struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`

	Lines []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartLine is one product in a cart. The auto-increment id keeps insertion order.
type CartLine struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    string    `gorm:"size:36;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID string    `gorm:"size:64;not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartLine) TableName() string {
	return "cart_lines"
}
