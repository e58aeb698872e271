// Package model contains the GORM-specific structs for the persistence layer.
package model

import (
	"time"
)

// Fixed document keys. Each key holds one JSON document that is overwritten
// wholesale on every write, mirroring the single-slot storage model the
// storefront state was designed around.
const (
	KeyCart            = "cart"
	KeyCatalogSnapshot = "catalog_snapshot"
	KeyOrderHistory    = "order_history"
	KeyLastOrder       = "last_order"
	KeyCheckoutSession = "checkout_session"
)

// KVDocumentModel is the GORM-specific struct for the 'kv_documents' table.
// It stores one JSON document per fixed key; writes replace the whole value.
type KVDocumentModel struct {
	Key       string `gorm:"primary_key;type:text"`
	Value     []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (KVDocumentModel) TableName() string {
	return "kv_documents"
}
