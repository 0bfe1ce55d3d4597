package mercadopago

import "time"

// PreferenceItem is one purchasable line of a checkout preference
type PreferenceItem struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	CurrencyID  string  `json:"currency_id"`
	UnitPrice   float64 `json:"unit_price"`
}

// Payer identifies the paying customer
type Payer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone *Phone `json:"phone,omitempty"`
}

// Phone is the payer's phone number
type Phone struct {
	AreaCode string `json:"area_code,omitempty"`
	Number   string `json:"number,omitempty"`
}

// BackURLs are the redirect targets for each payment outcome
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest represents the request body for the preference API
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	Payer             *Payer           `json:"payer,omitempty"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return,omitempty"`
	ExternalReference string           `json:"external_reference,omitempty"`
	NotificationURL   string           `json:"notification_url,omitempty"`
}

// PreferenceResponse represents the created preference
type PreferenceResponse struct {
	ID               string    `json:"id"`
	InitPoint        string    `json:"init_point"`
	SandboxInitPoint string    `json:"sandbox_init_point"`
	DateCreated      time.Time `json:"date_created"`
}

// ErrorResponse represents an error payload from the Mercado Pago API
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}
