package stripepay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mallow/storefront/pkg/logger"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"
)

// Client creates and reads Stripe checkout sessions
type Client struct {
	config Config
	api    *stripecl.API
	log    *logger.Logger
}

// NewClient creates a new Stripe client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	config.Currency = strings.ToLower(config.Currency)

	backendConfig := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: 30 * time.Second},
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if config.BaseURL != "" {
		backendConfig.URL = stripe.String(strings.TrimRight(config.BaseURL, "/"))
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig)

	api := &stripecl.API{}
	api.Init(config.APIKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	return &Client{
		config: config,
		api:    api,
		log:    logger.Get().Component("stripepay"),
	}, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// CreateSession starts a hosted payment page for the given line items
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if len(req.LineItems) == 0 || req.SuccessURL == "" || req.CancelURL == "" {
		return nil, ErrInvalidRequest
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems)),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	for _, item := range req.LineItems {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			product.Description = stripe.String(item.Description)
		}
		if item.ImageURL != "" {
			product.Images = []*string{stripe.String(item.ImageURL)}
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(c.config.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: product,
			},
		})
	}

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, c.mapError("create session", err)
	}

	c.log.Info("Stripe checkout session created", map[string]interface{}{
		"session_id":   s.ID,
		"amount_total": s.AmountTotal,
		"line_items":   len(req.LineItems),
	})
	return toSession(s), nil
}

// GetSession reads the current state of a checkout session
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrInvalidRequest
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, c.mapError("get session", err)
	}
	return toSession(s), nil
}

// ParseWebhook verifies the signature header and decodes the event
func (c *Client) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if signature == "" || c.config.WebhookSecret == "" {
		return nil, ErrInvalidSignature
	}

	event, err := webhook.ConstructEvent(payload, signature, c.config.WebhookSecret)
	if err != nil {
		c.log.Warn("Rejected Stripe webhook", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if strings.HasPrefix(out.Type, "checkout.session.") && event.Data != nil {
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("%w: failed to decode session: %v", ErrInvalidRequest, err)
		}
		out.Session = toSession(&s)
	}
	return out, nil
}

func toSession(s *stripe.CheckoutSession) *Session {
	return &Session{
		ID:            s.ID,
		URL:           s.URL,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
	}
}

// mapError maps Stripe API errors to the package sentinels
func (c *Client) mapError(op string, err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		c.log.Error("Stripe request failed", err, map[string]interface{}{"op": op})
		return fmt.Errorf("%w: %s: %v", ErrPaymentFailed, op, err)
	}

	c.log.Warn("Stripe API error", map[string]interface{}{
		"op":          op,
		"status_code": stripeErr.HTTPStatusCode,
		"type":        stripeErr.Type,
		"code":        stripeErr.Code,
		"message":     stripeErr.Msg,
	})

	switch {
	case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, stripeErr.Msg)
	case stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing:
		return fmt.Errorf("%w: %s", ErrSessionNotFound, stripeErr.Msg)
	case stripeErr.HTTPStatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidRequest, stripeErr.Msg)
	default:
		return fmt.Errorf("%w: %s: %s", ErrPaymentFailed, op, stripeErr.Msg)
	}
}
