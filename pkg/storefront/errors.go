package storefront

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the server no longer recognizes a cart or product
	ErrNotFound = errors.New("not found")

	// ErrService is returned for any other network, server or validation failure
	ErrService = errors.New("service error")

	// ErrNoCart is returned by cart mutations before an identifier is known
	ErrNoCart = errors.New("cart not initialized")
)

// ServiceError describes a failed call to the storefront API
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is makes every ServiceError match ErrService
func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

func serviceError(op string, status int, message string, err error) error {
	return &ServiceError{Op: op, StatusCode: status, Message: message, Err: err}
}
