package repository

import (
	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	FindAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	FindByIDs(ids []string) (map[string]model.Product, error)
	Upsert(product *model.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	logger.Debug("Finding all products in database")

	var products []model.Product
	if err := r.db.Order("position ASC, id ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products in database", err)
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id string) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs returns the known products keyed by id; unknown ids are absent
func (r *productRepository) FindByIDs(ids []string) (map[string]model.Product, error) {
	found := make(map[string]model.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var products []model.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		logger.Error("Failed to find products by IDs in database", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	for _, p := range products {
		found[p.ID] = p
	}
	return found, nil
}

// Upsert inserts the product or overwrites every column of an existing one
func (r *productRepository) Upsert(product *model.Product) error {
	logger.Debug("Upserting product in database", map[string]interface{}{
		"product_id": product.ID,
		"price":      product.Price,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(product).Error
	if err != nil {
		logger.Error("Failed to upsert product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}
