package model

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one line of the shopping cart: the article snapshot taken at
// add time, a positive quantity and the derived subtotal. The invariant
// Subtotal == Quantity * Article.SalePrice holds after every mutation.
type CartItem struct {
	ArticleID uint    `json:"id"`
	Article   Article `json:"article"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartSnapshot is the durable serialized form of a cart, one row per cart
// key. It plays the role browser local storage plays for the web client.
type CartSnapshot struct {
	Key       string         `gorm:"primarykey;type:varchar(100)" json:"key"`
	Payload   string         `gorm:"type:text" json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
