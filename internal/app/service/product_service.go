package service

import (
	"errors"
	"strings"

	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/internal/app/repository"
	"github.com/mallow/storefront/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

type ProductService interface {
	ListProducts(category string) ([]model.Product, error)
	GetProductByID(id string) (*model.Product, error)
	ImportProducts(products []model.Product) (int, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// ListProducts returns the catalog in display order, optionally narrowed
// to one category
func (s *productService) ListProducts(category string) ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	if category == "" {
		return products, nil
	}
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(string(p.Category), category) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *productService) GetProductByID(id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ImportProducts upserts every product. It stops at the first invalid one.
func (s *productService) ImportProducts(products []model.Product) (int, error) {
	logger.Info("Importing products", map[string]interface{}{
		"count": len(products),
	})

	imported := 0
	for i := range products {
		p := &products[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" || strings.TrimSpace(p.Name) == "" || p.Price < 0 {
			logger.Warn("Skipping import of invalid product", map[string]interface{}{
				"index":      i,
				"product_id": p.ID,
			})
			return imported, ErrInvalidProduct
		}
		if err := s.productRepo.Upsert(p); err != nil {
			return imported, err
		}
		imported++
	}

	logger.Info("Products imported successfully", map[string]interface{}{
		"imported": imported,
	})
	return imported, nil
}
