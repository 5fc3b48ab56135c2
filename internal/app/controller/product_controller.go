package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mallow/storefront/internal/app/service"
	apperrors "github.com/mallow/storefront/internal/errors"
	"github.com/mallow/storefront/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ListProducts returns the catalog
// GET /api/products?category=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts(c.Query("category"))
	if err != nil {
		log.Error("Failed to list products", err)
		apperrors.ParseAndRespond(c, err)
		return
	}

	log.Debug("Products listed", map[string]interface{}{
		"count": len(products),
	})
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	product, err := ctrl.productService.GetProductByID(c.Param("id"))
	if err != nil {
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
