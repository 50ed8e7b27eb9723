package models

import "time"

type OrderStatus string

const (
	// OrderStatusCreated means the checkout session and its line items
	// exist but payment has not been confirmed.
	OrderStatusCreated OrderStatus = "created"
	// OrderStatusCompleted means the payment provider confirmed payment
	// and customer details were attached. An order never leaves this
	// state.
	OrderStatusCompleted OrderStatus = "completed"
)

// StickerOrder is one checkout line item. Rows are correlated to a
// payment session by StripeSessionID, and grouped by CartOrderID when
// they were created from a cart (nil for single-item checkout).
type StickerOrder struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	ItemType        string      `gorm:"type:VARCHAR(20)" json:"item_type"`
	JobName         string      `gorm:"not null" json:"job_name"`
	MaterialID      string      `json:"material_id"`
	MaterialName    string      `json:"material_name"`
	Size            string      `json:"size"`
	CuttingID       string      `json:"cutting_id"`
	CuttingName     string      `json:"cutting_name"`
	Quantity        int         `json:"quantity"`
	Notes           string      `json:"notes"`
	FileKey         string      `json:"file_key"`
	FileURL         string      `json:"file_url"`
	FileName        string      `json:"file_name"`
	UnitPriceCents  int         `json:"unit_price_cents"`
	TotalPriceCents int         `json:"total_price_cents"`
	StripeSessionID string      `gorm:"index" json:"stripe_session_id"`
	CartOrderID     *string     `gorm:"index" json:"cart_order_id"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	ShippingAddress string      `json:"shipping_address"` // serialized JSON
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'created'" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}
