package db

import (
	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/pkg/logger"
	"github.com/mallow/storefront/pkg/storefront"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every table the backend owns
func Models() []interface{} {
	return []interface{}{
		&model.Product{},
		&model.Cart{},
		&model.CartLine{},
		&model.PaymentTransaction{},
		&model.ContactMessage{},
		&model.Subscriber{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the default catalog when the products table is empty
func Seed() error {
	return SeedProducts(DB)
}

// DefaultProducts is the launch catalog, shared with the storefront's
// offline fallback
func DefaultProducts() []model.Product {
	fallback := storefront.FallbackProducts()
	products := make([]model.Product, 0, len(fallback))
	for i, p := range fallback {
		products = append(products, model.Product{
			ID:          p.ID,
			Name:        p.Name,
			Subtitle:    p.Subtitle,
			Description: p.Description,
			Ingredients: p.Ingredients,
			Benefits:    p.Benefits,
			Usage:       p.Usage,
			Price:       p.Price,
			ImageURL:    p.ImageURL,
			Category:    model.ProductCategory(p.Category),
			InStock:     p.InStock,
			Position:    i + 1,
		})
	}
	return products
}

// SeedProducts inserts DefaultProducts into an empty catalog
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding product data...")

	products := DefaultProducts()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
		logger.Error("Failed to seed products", err)
		return err
	}

	logger.Info("Products seeded successfully", map[string]interface{}{
		"total_products": len(products),
	})
	return nil
}
