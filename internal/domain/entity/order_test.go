package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderLine_Total(t *testing.T) {
	line := OrderLine{ItemID: 1, Name: "Classic pancake", Price: 150, Quantity: 3}
	assert.InDelta(t, 450.0, line.Total(), 0.001)
}

func TestCartLine_Total(t *testing.T) {
	item := NewCatalogItem(CatalogRecord{ID: 1, Name: "Classic pancake", Price: 199.90})
	line := CartLine{Item: item, Quantity: 2}
	assert.InDelta(t, 399.80, line.Total(), 0.001)
}

func TestCheckoutSession_Subtotal(t *testing.T) {
	session := &CheckoutSession{
		OrderNumber: "BL12345678",
		Lines: []OrderLine{
			{ItemID: 1, Price: 150, Quantity: 2},
			{ItemID: 2, Price: 220, Quantity: 1},
		},
	}
	assert.InDelta(t, 520.0, session.Subtotal(), 0.001)
}
