package entity

import "time"

// CheckoutSession is the state held between the start of checkout and order
// submission: the cart snapshot handed over by the storefront and the order
// number assigned for this session. Repeated checkout starts reuse the same
// number; submission clears the session so the next checkout gets a fresh one.
type CheckoutSession struct {
	OrderNumber string      `json:"order_number"`
	Lines       []OrderLine `json:"lines"`
	StartedAt   time.Time   `json:"started_at"`
}

// Subtotal folds the snapshot line totals.
func (s *CheckoutSession) Subtotal() float64 {
	var sum float64
	for _, line := range s.Lines {
		sum += line.Total()
	}

	return sum
}
