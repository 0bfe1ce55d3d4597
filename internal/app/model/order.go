package model

import (
	"time"

	"gorm.io/gorm"
)

type DeliveryType string  // how the order leaves the shop
type PaymentMethod string // how the customer pays

const (
	DeliveryHome   DeliveryType = "DELIVERY" // home delivery
	DeliveryPickup DeliveryType = "RETIRO"   // in-store pickup

	PaymentCash        PaymentMethod = "EFECTIVO"
	PaymentMercadoPago PaymentMethod = "MERCADO_PAGO"

	// OrderStatusToConfirm is the only status this service ever sends;
	// the kitchen workflow beyond it lives in the remote API.
	OrderStatusToConfirm = "A_CONFIRMAR"
)

// CustomerInfo is the form captured during the information checkout step.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

// OrderLine is one article of the submitted order.
type OrderLine struct {
	ArticleID uint    `json:"articuloId"`
	Quantity  int     `json:"cantidad"`
	Subtotal  float64 `json:"subTotal"`
}

// OrderDraft is the payload assembled at checkout and sent to the remote
// API (or to the payment gateway as preference metadata). It is never kept
// beyond the pending-order record written before a gateway redirect.
type OrderDraft struct {
	OrderDate     string        `json:"fechaPedido"` // YYYY-MM-DD
	Status        string        `json:"estado"`
	DeliveryType  DeliveryType  `json:"tipoEnvio"`
	PaymentMethod PaymentMethod `json:"formaPago"`
	Total         float64       `json:"total"`
	DeliveryFee   float64       `json:"costoEnvio"`
	CustomerID    uint          `json:"clienteId"`
	AddressID     uint          `json:"domicilioId"`
	Customer      CustomerInfo  `json:"cliente"`
	Lines         []OrderLine   `json:"detalles"`
}

// PendingOrder persists the draft submitted right before a payment-gateway
// redirect so the confirmation view can reconcile it afterwards.
type PendingOrder struct {
	CartKey      string         `gorm:"primarykey;type:varchar(100)" json:"cart_key"`
	PreferenceID string         `gorm:"type:varchar(100);index" json:"preference_id"`
	Payload      string         `gorm:"type:text" json:"payload"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PendingOrder) TableName() string {
	return "pending_orders"
}

// ProductRanking is one row of the remote sales-ranking report.
type ProductRanking struct {
	ID           uint   `json:"id"`
	Denomination string `json:"denomination"`
	QuantitySold int    `json:"quantity_sold"`
	Kind         string `json:"kind"` // COCINA or BEBIDA
}
