package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mallow/storefront/internal/app/service"
	apperrors "github.com/mallow/storefront/internal/errors"
	"github.com/mallow/storefront/internal/middleware"
)

const stripeSignatureHeader = "Stripe-Signature"

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

type CheckoutRequest struct {
	CartID    string `json:"cart_id" binding:"required"`
	OriginURL string `json:"origin_url" binding:"required"`
}

// CreateSession starts a hosted payment for the cart
// POST /api/checkout
func (ctrl *CheckoutController) CreateSession(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, map[string]string{
			"body": err.Error(),
		})
		return
	}

	resp, err := ctrl.checkoutService.CreateSession(c.Request.Context(), req.CartID, req.OriginURL)
	if err != nil {
		log.Warn("Checkout rejected", map[string]interface{}{
			"cart_id": req.CartID,
			"error":   err.Error(),
		})
		apperrors.ParseAndRespond(c, err)
		return
	}

	log.Info("Checkout session started", map[string]interface{}{
		"cart_id":    req.CartID,
		"session_id": resp.SessionID,
	})
	c.JSON(http.StatusOK, resp)
}

// GetStatus reports the payment state of a session
// GET /api/checkout/status/:session_id
func (ctrl *CheckoutController) GetStatus(c *gin.Context) {
	status, err := ctrl.checkoutService.GetStatus(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to read checkout status", map[string]interface{}{
			"session_id": c.Param("session_id"),
			"error":      err.Error(),
		})
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Webhook receives provider notifications
// POST /api/webhook/stripe
func (ctrl *CheckoutController) Webhook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	payload, err := c.GetRawData()
	if err != nil {
		apperrors.RespondWithValidationError(c, map[string]string{
			"body": "unreadable",
		})
		return
	}

	if err := ctrl.checkoutService.HandleWebhook(c.Request.Context(), payload, c.GetHeader(stripeSignatureHeader)); err != nil {
		log.Error("Webhook error", err)
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
