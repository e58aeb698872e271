package entity

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryMethod is how the customer receives the order.
type DeliveryMethod string

const (
	// DeliveryMethodCourier adds the flat delivery surcharge.
	DeliveryMethodCourier DeliveryMethod = "delivery"
	// DeliveryMethodPickup is self-pickup, free of surcharge.
	DeliveryMethodPickup DeliveryMethod = "pickup"
)

// PaymentMethod is how the customer pays for the order.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
)

// Customer holds the checkout form fields supplied at submission.
type Customer struct {
	Name     string         `json:"name"`
	Phone    string         `json:"phone"`
	Address  string         `json:"address"`
	Payment  PaymentMethod  `json:"payment"`
	Delivery DeliveryMethod `json:"delivery"`
}

// OrderLine is a snapshot copy of a cart line taken when checkout began.
// It deliberately copies the item attributes instead of referencing a live
// catalog item, so later catalog edits cannot rewrite order history.
type OrderLine struct {
	ItemID   int     `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Total is the snapshot line total.
func (l OrderLine) Total() float64 {
	return l.Price * float64(l.Quantity)
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID           uuid.UUID   `json:"id"`
	Number       string      `json:"number"` // timestamp-derived, unique enough for the session
	Customer     Customer    `json:"customer"`
	Lines        []OrderLine `json:"lines"`
	Subtotal     float64     `json:"subtotal"`
	DeliveryCost float64     `json:"delivery_cost"`
	Total        float64     `json:"total"`
	CreatedAt    time.Time   `json:"created_at"`
}
