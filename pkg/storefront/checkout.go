package storefront

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Navigator moves the whole application to a payment provider URL
type Navigator interface {
	Navigate(url string) error
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(url string) error

func (f NavigatorFunc) Navigate(url string) error {
	return f(url)
}

// BeginCheckout asks the backend for a payment session scoped to the cart
// and returnOrigin and returns the redirect URL. An empty cart and a
// provider failure are both reported as ErrService.
func (c *Client) BeginCheckout(ctx context.Context, id CartIdentifier, returnOrigin string) (string, error) {
	session, err := c.CreateCheckoutSession(ctx, id, returnOrigin)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// CreateCheckoutSession is BeginCheckout returning the full session
func (c *Client) CreateCheckoutSession(ctx context.Context, id CartIdentifier, returnOrigin string) (CheckoutSession, error) {
	if id == "" {
		return CheckoutSession{}, serviceError("begin checkout", 0, "no cart", nil)
	}

	var session CheckoutSession
	body := checkoutRequest{
		CartID:    string(id),
		OriginURL: strings.TrimRight(returnOrigin, "/"),
	}
	if err := c.do(ctx, "begin checkout", http.MethodPost, "/checkout", body, &session); err != nil {
		return CheckoutSession{}, mutationError(err)
	}
	if session.URL == "" {
		return CheckoutSession{}, serviceError("begin checkout", 0, "provider returned no redirect url", nil)
	}
	return session, nil
}

// CheckoutStatus reads the payment provider state for a session
func (c *Client) CheckoutStatus(ctx context.Context, sessionID string) (PaymentStatus, error) {
	var status PaymentStatus
	path := "/checkout/status/" + url.PathEscape(sessionID)
	if err := c.do(ctx, "checkout status", http.MethodGet, path, nil, &status); err != nil {
		return PaymentStatus{}, err
	}
	return status, nil
}

// CheckoutInitiator converts the current cart into a provider redirect
type CheckoutInitiator struct {
	client *Client
	nav    Navigator
}

func NewCheckoutInitiator(client *Client, nav Navigator) *CheckoutInitiator {
	return &CheckoutInitiator{client: client, nav: nav}
}

// Checkout begins checkout and, only on success, navigates away. It is the
// terminal action of the current flow.
func (i *CheckoutInitiator) Checkout(ctx context.Context, id CartIdentifier, returnOrigin string) (string, error) {
	redirect, err := i.client.BeginCheckout(ctx, id, returnOrigin)
	if err != nil {
		i.client.log.Warn("Checkout failed", map[string]interface{}{
			"cart_id": string(id),
			"error":   err.Error(),
		})
		return "", err
	}

	i.client.log.Info("Redirecting to payment provider", map[string]interface{}{
		"cart_id": string(id),
	})
	if err := i.nav.Navigate(redirect); err != nil {
		return redirect, serviceError("navigate", 0, "failed to open payment page", err)
	}
	return redirect, nil
}
