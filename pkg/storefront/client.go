package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mallow/storefront/pkg/logger"
)

// Client talks to the storefront REST API under a fixed base path
// (for example https://mallow.example.com/api).
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a client for baseURL. A nil httpClient uses
// http.DefaultClient, so calls rely on transport defaults for timeouts.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        logger.Get().Component("storefront_client"),
	}
}

// CreateCart requests a new cart and returns its identifier
func (c *Client) CreateCart(ctx context.Context) (CartIdentifier, error) {
	var resp createCartResponse
	if err := c.do(ctx, "create cart", http.MethodPost, "/cart", nil, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", serviceError("create cart", 0, "response carried no cart id", nil)
	}
	return CartIdentifier(resp.ID), nil
}

// FetchCart returns the current cart. ErrNotFound means the identifier is
// no longer known and a new cart should be created.
func (c *Client) FetchCart(ctx context.Context, id CartIdentifier) (Cart, error) {
	var cart Cart
	if err := c.do(ctx, "fetch cart", http.MethodGet, cartPath(id), nil, &cart); err != nil {
		return Cart{}, err
	}
	return normalize(cart), nil
}

// AddItem adds quantity units of productID. Any rejection is an ErrService.
func (c *Client) AddItem(ctx context.Context, id CartIdentifier, productID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, serviceError("add item", 0, "quantity must be positive", nil)
	}

	var cart Cart
	body := addItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, "add item", http.MethodPost, cartPath(id)+"/items", body, &cart); err != nil {
		return Cart{}, mutationError(err)
	}
	return normalize(cart), nil
}

// SetQuantity sets the line quantity. Zero removes the line.
func (c *Client) SetQuantity(ctx context.Context, id CartIdentifier, productID string, quantity int) (Cart, error) {
	if quantity < 0 {
		return Cart{}, serviceError("set quantity", 0, "quantity must not be negative", nil)
	}

	path := itemPath(id, productID) + "?quantity=" + strconv.Itoa(quantity)
	var cart Cart
	if err := c.do(ctx, "set quantity", http.MethodPut, path, nil, &cart); err != nil {
		return Cart{}, mutationError(err)
	}
	return normalize(cart), nil
}

// RemoveItem removes the line. Removing an absent product returns the
// unchanged cart.
func (c *Client) RemoveItem(ctx context.Context, id CartIdentifier, productID string) (Cart, error) {
	var cart Cart
	if err := c.do(ctx, "remove item", http.MethodDelete, itemPath(id, productID), nil, &cart); err != nil {
		return Cart{}, mutationError(err)
	}
	return normalize(cart), nil
}

func cartPath(id CartIdentifier) string {
	return "/cart/" + url.PathEscape(string(id))
}

func itemPath(id CartIdentifier, productID string) string {
	return cartPath(id) + "/items/" + url.PathEscape(productID)
}

// normalize gives every cart a non-nil item slice
func normalize(cart Cart) Cart {
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	return cart
}

// mutationError folds not-found into ErrService: mutations do not
// distinguish rejection causes.
func mutationError(err error) error {
	var nf notFoundError
	if errors.As(err, &nf) {
		return nf.ServiceError
	}
	return err
}

// notFoundError matches both ErrNotFound and, through the wrapped
// ServiceError, the operation details
type notFoundError struct {
	*ServiceError
}

func (e notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e notFoundError) Unwrap() error {
	return e.ServiceError
}

// do performs one request against the API and decodes a 2xx JSON body into out
func (c *Client) do(ctx context.Context, op, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		if err != nil {
			return serviceError(op, 0, "failed to marshal request body", err)
		}
		body = bytes.NewReader(reqBody)
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return serviceError(op, 0, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("Storefront API request", map[string]interface{}{
		"op":     op,
		"method": method,
		"url":    endpoint,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return serviceError(op, 0, "", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return serviceError(op, resp.StatusCode, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := strings.TrimSpace(string(respBody))
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil {
			switch {
			case errResp.Detail != "":
				message = errResp.Detail
			case errResp.Message != "":
				message = errResp.Message
			case errResp.Error != "":
				message = errResp.Error
			}
		}

		c.log.Warn("Storefront API error response", map[string]interface{}{
			"op":          op,
			"status_code": resp.StatusCode,
			"message":     message,
		})

		se := &ServiceError{Op: op, StatusCode: resp.StatusCode, Message: message}
		if resp.StatusCode == http.StatusNotFound {
			return notFoundError{se}
		}
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return serviceError(op, resp.StatusCode, "failed to decode response", err)
	}
	return nil
}
