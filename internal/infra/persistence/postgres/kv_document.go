// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"

	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// saveDocument marshals the given value and overwrites the document stored
// under key. The write is an upsert so the first save and every later
// overwrite go through the same path.
func saveDocument(ctx context.Context, db *gorm.DB, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode document %q", key)
	}

	doc := model.KVDocumentModel{Key: key, Value: payload}
	err = db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&doc).Error
	if err != nil {
		return errors.Wrapf(err, "failed to save document %q", key)
	}

	return nil
}

// loadDocument reads the document stored under key and unmarshals it into out.
// It returns gorm.ErrRecordNotFound unchanged so callers can map absence to
// their own sentinel.
func loadDocument(ctx context.Context, db *gorm.DB, key string, out any) error {
	var doc model.KVDocumentModel

	err := db.WithContext(ctx).
		Where("key = ?", key).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return errors.Wrapf(err, "failed to load document %q", key)
	}

	if err := json.Unmarshal(doc.Value, out); err != nil {
		return errors.Wrapf(err, "failed to decode document %q", key)
	}

	return nil
}

// deleteDocument removes the document stored under key. Deleting an absent
// document is not an error.
func deleteDocument(ctx context.Context, db *gorm.DB, key string) error {
	err := db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.KVDocumentModel{}).Error
	if err != nil {
		return errors.Wrapf(err, "failed to delete document %q", key)
	}

	return nil
}
