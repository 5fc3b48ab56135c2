package stripepay

import "errors"

var (
	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnauthorized is returned when the API key is rejected
	ErrUnauthorized = errors.New("unauthorized: invalid API key")

	// ErrSessionNotFound is returned when Stripe does not know the session id
	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrPaymentFailed is returned for any other provider failure
	ErrPaymentFailed = errors.New("payment provider failed")

	// ErrInvalidSignature is returned when a webhook payload cannot be verified
	ErrInvalidSignature = errors.New("invalid webhook signature")
)
