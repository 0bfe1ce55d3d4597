package mercadopago

import "errors"

var (
	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrPreferenceFailed is returned when the preference cannot be created
	ErrPreferenceFailed = errors.New("failed to create payment preference")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")

	// ErrUnauthorized is returned when the access token is invalid
	ErrUnauthorized = errors.New("unauthorized: invalid access token")
)
