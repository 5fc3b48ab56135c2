package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/internal/app/repository"
	"github.com/mallow/storefront/pkg/logger"
	"github.com/mallow/storefront/pkg/payment/stripepay"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInvalidCartTotal    = errors.New("invalid cart total")
	ErrInvalidOrigin       = errors.New("invalid origin url")
	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrPaymentProvider     = errors.New("payment provider error")
	ErrInvalidWebhook      = errors.New("invalid webhook")
)

// PaymentProvider is the hosted checkout the shop redirects to
type PaymentProvider interface {
	CreateSession(ctx context.Context, req stripepay.SessionRequest) (*stripepay.Session, error)
	GetSession(ctx context.Context, sessionID string) (*stripepay.Session, error)
	ParseWebhook(payload []byte, signature string) (*stripepay.WebhookEvent, error)
}

type CheckoutSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type CheckoutStatusResponse struct {
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	AmountTotal   float64 `json:"amount_total"`
	Currency      string  `json:"currency"`
}

type CheckoutService interface {
	CreateSession(ctx context.Context, cartID, originURL string) (*CheckoutSessionResponse, error)
	GetStatus(ctx context.Context, sessionID string) (*CheckoutStatusResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type checkoutService struct {
	cartService CartService
	txRepo      repository.PaymentTransactionRepository
	provider    PaymentProvider
	currency    string
}

func NewCheckoutService(
	cartService CartService,
	txRepo repository.PaymentTransactionRepository,
	provider PaymentProvider,
	currency string,
) CheckoutService {
	return &checkoutService{
		cartService: cartService,
		txRepo:      txRepo,
		provider:    provider,
		currency:    strings.ToLower(currency),
	}
}

// CreateSession prices the cart server-side and opens a provider session
// that returns to originURL
func (s *checkoutService) CreateSession(ctx context.Context, cartID, originURL string) (*CheckoutSessionResponse, error) {
	origin := strings.TrimRight(strings.TrimSpace(originURL), "/")
	if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
		return nil, ErrInvalidOrigin
	}

	cart, err := s.cartService.GetCart(cartID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	if cart.Total <= 0 {
		return nil, ErrInvalidCartTotal
	}

	items := make([]stripepay.LineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, stripepay.LineItem{
			Name:        item.Product.Name,
			Description: item.Product.Subtitle,
			ImageURL:    item.Product.ImageURL,
			UnitAmount:  toMinorUnits(item.Product.Price),
			Quantity:    int64(item.Quantity),
		})
	}

	session, err := s.provider.CreateSession(ctx, stripepay.SessionRequest{
		LineItems:  items,
		SuccessURL: origin + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/cart",
		Metadata:   map[string]string{"cart_id": cart.ID},
	})
	if err != nil {
		logger.Error("Failed to create checkout session", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return nil, fmt.Errorf("%w: %w", ErrPaymentProvider, err)
	}

	tx := &model.PaymentTransaction{
		SessionID:     session.ID,
		CartID:        cart.ID,
		Amount:        cart.Total,
		Currency:      s.currency,
		Status:        model.TransactionStatusPending,
		PaymentStatus: model.PaymentStatePending,
	}
	if err := s.txRepo.Create(tx); err != nil {
		return nil, err
	}

	logger.Info("Checkout session created", map[string]interface{}{
		"cart_id":    cart.ID,
		"session_id": session.ID,
		"amount":     cart.Total,
	})
	return &CheckoutSessionResponse{URL: session.URL, SessionID: session.ID}, nil
}

// GetStatus reads the provider session and folds it into the transaction
func (s *checkoutService) GetStatus(ctx context.Context, sessionID string) (*CheckoutStatusResponse, error) {
	session, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, stripepay.ErrSessionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPaymentProvider, err)
	}

	if err := s.apply(session); err != nil && !errors.Is(err, ErrTransactionNotFound) {
		return nil, err
	}

	return &CheckoutStatusResponse{
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		AmountTotal:   fromMinorUnits(session.AmountTotal),
		Currency:      session.Currency,
	}, nil
}

func (s *checkoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWebhook, err)
	}

	logger.Info("Payment webhook received", map[string]interface{}{
		"event_id":   event.ID,
		"event_type": event.Type,
	})

	if event.Session == nil {
		return nil
	}
	if err := s.apply(event.Session); err != nil && !errors.Is(err, ErrTransactionNotFound) {
		return err
	}
	return nil
}

// apply records the provider state. The first time a session is seen paid
// the cart it was opened for is cleared.
func (s *checkoutService) apply(session *stripepay.Session) error {
	tx, err := s.txRepo.FindBySessionID(session.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("No transaction for payment session", map[string]interface{}{
				"session_id": session.ID,
			})
			return ErrTransactionNotFound
		}
		return err
	}

	status := model.TransactionStatus(session.Status)
	paymentStatus := model.PaymentState(session.PaymentStatus)
	if tx.Status == status && tx.PaymentStatus == paymentStatus {
		return nil
	}

	becamePaid := !tx.IsPaid() && paymentStatus == model.PaymentStatePaid
	tx.Status = status
	tx.PaymentStatus = paymentStatus
	if becamePaid {
		now := time.Now()
		tx.PaidAt = &now
	}
	if err := s.txRepo.Update(tx); err != nil {
		return err
	}

	logger.Info("Payment transaction updated", map[string]interface{}{
		"session_id":     tx.SessionID,
		"status":         tx.Status,
		"payment_status": tx.PaymentStatus,
	})

	if becamePaid {
		if err := s.cartService.ClearCart(tx.CartID); err != nil && !errors.Is(err, ErrCartNotFound) {
			logger.Error("Failed to clear cart after payment", err, map[string]interface{}{
				"cart_id":    tx.CartID,
				"session_id": tx.SessionID,
			})
			return err
		}
	}
	return nil
}

func toMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

func fromMinorUnits(amount int64) float64 {
	return decimal.New(amount, -2).InexactFloat64()
}
