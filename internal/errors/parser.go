package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mallow/storefront/internal/app/service"
	"gorm.io/gorm"
)

// Shopper facing messages. The storefront shows these verbatim.
const (
	MsgCartNotFound    = "Winkelwagen niet gevonden"
	MsgProductNotFound = "Product niet gevonden"
	MsgCartEmpty       = "Winkelwagen is leeg"
	MsgCartInvalid     = "Ongeldige winkelwagen"
	MsgInvalidQuantity = "Ongeldige hoeveelheid"
	MsgInvalidEmail    = "Ongeldig e-mailadres"
	MsgSessionNotFound = "Betaalsessie niet gevonden"
	MsgInvalidWebhook  = "Ongeldige webhook"
)

// ErrorInfo is the response an error maps to
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

type sentinel struct {
	err  error
	info ErrorInfo
}

var sentinels = []sentinel{
	{service.ErrCartNotFound, ErrorInfo{http.StatusNotFound, CartNotFound, MsgCartNotFound}},
	{service.ErrProductNotFound, ErrorInfo{http.StatusNotFound, ProductNotFound, MsgProductNotFound}},
	{service.ErrInvalidQuantity, ErrorInfo{http.StatusBadRequest, CartInvalidQuantity, MsgInvalidQuantity}},
	{service.ErrCartEmpty, ErrorInfo{http.StatusBadRequest, CartEmpty, MsgCartEmpty}},
	{service.ErrInvalidCartTotal, ErrorInfo{http.StatusBadRequest, CartInvalid, MsgCartInvalid}},
	{service.ErrInvalidOrigin, ErrorInfo{http.StatusBadRequest, ValidationInvalidInput, "Ongeldige origin_url"}},
	{service.ErrTransactionNotFound, ErrorInfo{http.StatusNotFound, PaymentSessionNotFound, MsgSessionNotFound}},
	{service.ErrInvalidWebhook, ErrorInfo{http.StatusBadRequest, PaymentSignatureInvalid, MsgInvalidWebhook}},
	{service.ErrPaymentProvider, ErrorInfo{http.StatusBadGateway, PaymentProviderError, "Betaalprovider is niet bereikbaar"}},
	{service.ErrInvalidEmail, ErrorInfo{http.StatusBadRequest, ValidationInvalidEmail, MsgInvalidEmail}},
	{service.ErrInvalidContact, ErrorInfo{http.StatusBadRequest, ValidationRequired, "Naam en bericht zijn verplicht"}},
	{service.ErrInvalidProduct, ErrorInfo{http.StatusBadRequest, ValidationInvalidInput, "Ongeldig product"}},
}

// ParseError maps err to a status, code and shopper facing message.
// Storage details are never exposed.
func ParseError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{http.StatusInternalServerError, InternalServerError, "Er is iets misgegaan"}
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.info
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{http.StatusNotFound, ResourceNotFound, "Niet gevonden"}
	}

	errLower := strings.ToLower(err.Error())

	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return ErrorInfo{http.StatusConflict, ResourceAlreadyExists, "Bestaat al"}
	}
	if strings.Contains(errLower, "foreign key constraint") {
		return ErrorInfo{http.StatusConflict, ResourceConflict, "Gekoppelde gegevens ontbreken"}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{http.StatusServiceUnavailable, InternalDatabaseError, "Dienst tijdelijk niet beschikbaar"}
	}

	return ErrorInfo{http.StatusInternalServerError, InternalServerError, "Er is iets misgegaan, probeer het later opnieuw"}
}

// ParseAndRespond writes the response err maps to
func ParseAndRespond(c *gin.Context, err error) {
	info := ParseError(err)
	RespondWithError(c, info.Status, info.Code, info.Message)
}
