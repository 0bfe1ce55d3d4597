package mercadopago

// Config represents the configuration for the Mercado Pago client
type Config struct {
	// AccessToken is the private credential used for API authentication
	AccessToken string

	// BaseURL is the Mercado Pago checkout API base URL
	BaseURL string

	// SuccessURL is the redirect URL after an approved payment
	SuccessURL string

	// FailureURL is the redirect URL after a rejected payment
	FailureURL string

	// PendingURL is the redirect URL while the payment is in process
	PendingURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrInvalidRequest
	}
	if c.BaseURL == "" {
		return ErrInvalidRequest
	}
	if c.SuccessURL == "" {
		return ErrInvalidRequest
	}
	if c.FailureURL == "" {
		return ErrInvalidRequest
	}
	return nil
}
