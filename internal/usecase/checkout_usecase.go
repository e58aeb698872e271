package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SubmitOrderInput is the checkout form a customer submits.
type SubmitOrderInput struct {
	Name     string
	Phone    string
	Address  string
	Payment  entity.PaymentMethod
	Delivery entity.DeliveryMethod
}

// CheckoutQuote is the priced view of the current checkout session.
type CheckoutQuote struct {
	OrderNumber  string             `json:"order_number"`
	Lines        []entity.OrderLine `json:"lines"`
	Subtotal     float64            `json:"subtotal"`
	DeliveryCost float64            `json:"delivery_cost"`
	Total        float64            `json:"total"`
}

// CheckoutUsecase walks a customer from a cart snapshot to a finalized order.
type CheckoutUsecase interface {
	// Begin snapshots the cart and assigns the session's order number.
	// Calling Begin again before submission reuses the existing number and
	// refreshes the snapshot. Returns ErrEmptyCart for an empty cart.
	Begin(ctx context.Context) (*CheckoutQuote, error)

	// Quote prices the current session under the given delivery method.
	Quote(ctx context.Context, delivery entity.DeliveryMethod) (*CheckoutQuote, error)

	// Submit finalizes the order: assembles the immutable record, appends
	// it to order history, overwrites the last-order slot, clears the cart
	// and the session, and publishes an order-placed event.
	Submit(ctx context.Context, input *SubmitOrderInput) (*entity.Order, error)

	// LastOrder returns the most recently finalized order.
	LastOrder(ctx context.Context) (*entity.Order, error)

	// OrderByNumber looks an order up in the history.
	OrderByNumber(ctx context.Context, number string) (*entity.Order, error)

	// OrderQR renders the pickup QR code PNG for an order number.
	OrderQR(ctx context.Context, number string) ([]byte, error)

	// ResolveScannedQR decodes a scanned pickup QR payload and returns the
	// order it refers to. Returns ErrInvalidQRCode for unrecognized payloads.
	ResolveScannedQR(ctx context.Context, qrData string) (*entity.Order, error)
}
