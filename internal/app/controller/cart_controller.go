package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mallow/storefront/internal/app/service"
	apperrors "github.com/mallow/storefront/internal/errors"
	"github.com/mallow/storefront/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateCart issues a new empty cart
// POST /api/cart
func (ctrl *CartController) CreateCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cart, err := ctrl.cartService.CreateCart()
	if err != nil {
		log.Error("Failed to create cart", err)
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GetCart returns the priced cart
// GET /api/cart/:id
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.cartService.GetCart(c.Param("id"))
	if err != nil {
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds quantity of a product to the cart
// POST /api/cart/:id/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	cartID := c.Param("id")

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"cart_id": cartID,
			"error":   err.Error(),
		})
		apperrors.RespondWithValidationError(c, map[string]string{
			"body": err.Error(),
		})
		return
	}

	cart, err := ctrl.cartService.AddItem(cartID, req.ProductID, req.Quantity)
	if err != nil {
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateItem sets a line's quantity. Zero or less removes it.
// PUT /api/cart/:id/items/:product_id?quantity=N
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	cartID := c.Param("id")

	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid quantity parameter", map[string]interface{}{
			"cart_id":  cartID,
			"quantity": c.Query("quantity"),
		})
		apperrors.RespondWithValidationError(c, map[string]string{
			"quantity": "must be an integer",
		})
		return
	}

	cart, err := ctrl.cartService.SetQuantity(cartID, c.Param("product_id"), quantity)
	if err != nil {
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem drops a line from the cart
// DELETE /api/cart/:id/items/:product_id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	cart, err := ctrl.cartService.RemoveItem(c.Param("id"), c.Param("product_id"))
	if err != nil {
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
