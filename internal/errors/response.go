package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body. Detail repeats the shopper
// facing message under the key storefront clients read.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// RespondWithError writes an error body with the given status and code
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
		Detail:  message,
	})
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func BadGateway(c *gin.Context, errorCode string, message string) {
	if message == "" {
		message = "Betaalprovider is niet bereikbaar"
	}
	RespondWithError(c, http.StatusBadGateway, errorCode, message)
}

func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "Te veel verzoeken, probeer het later opnieuw"
	}
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   RateLimitExceeded,
		Message: message,
		Detail:  message,
	})
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Er is iets misgegaan, probeer het later opnieuw"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ValidationError carries per-field messages for a rejected request body
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Detail  string            `json:"detail"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	message := "Ongeldige invoer"
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: message,
		Detail:  message,
		Fields:  fields,
	})
}
