package services

import "errors"

// ServiceError carries an HTTP status alongside a user-facing message.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

var (
	// ErrMalformedMetadata means a completed checkout session arrived
	// without the metadata needed to reconstruct the order. The webhook is
	// still acknowledged; no order is created.
	ErrMalformedMetadata = errors.New("checkout session metadata missing or malformed")

	// ErrOrderNumberConflict means order creation kept hitting the
	// order_number unique index even after regenerating the number.
	ErrOrderNumberConflict = errors.New("order number conflict could not be resolved")
)
