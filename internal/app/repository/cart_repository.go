package repository

import (
	"errors"
	"time"

	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cart *model.Cart) error
	FindByID(id string) (*model.Cart, error)
	AddQuantity(cartID, productID string, quantity int) error
	SetQuantity(cartID, productID string, quantity int) error
	DeleteLine(cartID, productID string) error
	DeleteLines(cartID string) error
	DeleteStale(before time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	logger.Debug("Creating cart in database", map[string]interface{}{
		"cart_id": cart.ID,
	})

	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}
	return nil
}

// FindByID loads the cart with its lines in insertion order
func (r *cartRepository) FindByID(id string) (*model.Cart, error) {
	logger.Debug("Finding cart by ID in database", map[string]interface{}{
		"cart_id": id,
	})

	var cart model.Cart
	err := r.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_lines.id ASC")
	}).Where("id = ?", id).First(&cart).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find cart by ID in database", err, map[string]interface{}{
				"cart_id": id,
			})
		}
		return nil, err
	}

	logger.Debug("Cart found in database", map[string]interface{}{
		"cart_id": cart.ID,
		"lines":   len(cart.Lines),
	})
	return &cart, nil
}

// AddQuantity increments the line for productID, creating it if needed
func (r *cartRepository) AddQuantity(cartID, productID string, quantity int) error {
	logger.Debug("Adding quantity to cart line in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CartLine{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			line := &model.CartLine{CartID: cartID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(line).Error; err != nil {
				return err
			}
		}
		return touch(tx, cartID)
	})
	if err != nil {
		logger.Error("Failed to add quantity to cart line in database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return err
	}
	return nil
}

// SetQuantity overwrites the quantity of an existing line. An absent line
// is left absent.
func (r *cartRepository) SetQuantity(cartID, productID string, quantity int) error {
	logger.Debug("Setting cart line quantity in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CartLine{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", quantity).Error; err != nil {
			return err
		}
		return touch(tx, cartID)
	})
	if err != nil {
		logger.Error("Failed to set cart line quantity in database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteLine(cartID, productID string) error {
	logger.Debug("Deleting cart line from database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).
			Delete(&model.CartLine{}).Error; err != nil {
			return err
		}
		return touch(tx, cartID)
	})
	if err != nil {
		logger.Error("Failed to delete cart line from database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteLines(cartID string) error {
	logger.Debug("Deleting all cart lines from database", map[string]interface{}{
		"cart_id": cartID,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartLine{}).Error; err != nil {
			return err
		}
		return touch(tx, cartID)
	})
	if err != nil {
		logger.Error("Failed to delete cart lines from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

// DeleteStale removes carts, with their lines, last updated before the cutoff
func (r *cartRepository) DeleteStale(before time.Time) (int64, error) {
	logger.Debug("Deleting stale carts from database", map[string]interface{}{
		"before": before.Format(time.RFC3339),
	})

	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&model.Cart{}).Select("id").Where("updated_at < ?", before)
		if err := tx.Where("cart_id IN (?)", stale).Delete(&model.CartLine{}).Error; err != nil {
			return err
		}
		res := tx.Where("updated_at < ?", before).Delete(&model.Cart{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete stale carts from database", err)
		return 0, err
	}

	logger.Debug("Stale carts deleted from database", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted, nil
}

func touch(tx *gorm.DB, cartID string) error {
	return tx.Model(&model.Cart{}).Where("id = ?", cartID).Update("updated_at", time.Now()).Error
}
