package entity

// CartLine pairs exactly one catalog item with a purchase quantity.
// A line never exists with a quantity below one; setting a non-positive
// quantity removes the line instead.
type CartLine struct {
	Item     *CatalogItem `json:"item"`
	Quantity int          `json:"quantity"`
}

// Total is the line total, recomputed on read rather than stored.
func (l CartLine) Total() float64 {
	return l.Item.Price * float64(l.Quantity)
}

// StoredCartLine is the persisted form of a cart line: only the item
// reference and the quantity survive a page reload; the item itself is
// re-resolved against the catalog on rehydration.
type StoredCartLine struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}
