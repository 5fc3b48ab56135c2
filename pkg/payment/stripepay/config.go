package stripepay

// Config represents the configuration for the Stripe checkout client
type Config struct {
	// APIKey is the Stripe secret key (sk_live_... or sk_test_...)
	APIKey string

	// WebhookSecret verifies the Stripe-Signature header of webhook calls
	WebhookSecret string

	// Currency is the ISO currency of every session, lower-case
	Currency string

	// BaseURL overrides the Stripe API endpoint, for stripe-mock and tests
	BaseURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrInvalidRequest
	}
	if c.Currency == "" {
		return ErrInvalidRequest
	}
	return nil
}
