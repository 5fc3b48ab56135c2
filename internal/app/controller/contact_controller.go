package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mallow/storefront/internal/app/service"
	apperrors "github.com/mallow/storefront/internal/errors"
	"github.com/mallow/storefront/internal/middleware"
)

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// SubmitMessage stores a contact form message
// POST /api/contact
func (ctrl *ContactController) SubmitMessage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid contact request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, map[string]string{
			"body": err.Error(),
		})
		return
	}

	msg, err := ctrl.contactService.SubmitMessage(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// Subscribe adds an address to the newsletter
// POST /api/subscribe
func (ctrl *ContactController) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, map[string]string{
			"email": "required",
		})
		return
	}

	message, err := ctrl.contactService.Subscribe(req.Email)
	if err != nil {
		apperrors.ParseAndRespond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
