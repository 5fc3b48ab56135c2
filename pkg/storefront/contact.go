package storefront

import (
	"context"
	"net/http"
	"strings"
)

// SubmitContact posts the contact form
func (c *Client) SubmitContact(ctx context.Context, msg ContactMessage) error {
	if strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.Message) == "" {
		return serviceError("submit contact", 0, "email and message are required", nil)
	}
	return c.do(ctx, "submit contact", http.MethodPost, "/contact", msg, nil)
}

// Subscribe registers email for the newsletter and returns the server's
// confirmation message
func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", serviceError("subscribe", 0, "email is required", nil)
	}

	var resp subscribeResponse
	if err := c.do(ctx, "subscribe", http.MethodPost, "/subscribe", subscribeRequest{Email: email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
