// Package catalogsource loads the JSON catalog document from a blob bucket.
package catalogsource

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"

	// Bucket drivers for local files and GCS catalog documents.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

type blobSource struct {
	bucketURL string
	objectKey string
	logger    *slog.Logger
}

// NewBlobSource creates a catalog source reading from the configured bucket.
func NewBlobSource(cfg *config.Config, logger *slog.Logger) (service.CatalogSource, error) {
	if cfg.Catalog == nil || cfg.Catalog.BucketURL == "" {
		return nil, errors.New("catalog bucket URL is not configured")
	}

	return &blobSource{
		bucketURL: cfg.Catalog.BucketURL,
		objectKey: cfg.Catalog.ObjectKey,
		logger:    logger,
	}, nil
}

// FetchRecords reads and decodes the catalog document. The bucket is opened
// per call so a reload always observes the latest object, never a cached one.
func (s *blobSource) FetchRecords(ctx context.Context) ([]entity.CatalogRecord, error) {
	bucket, err := blob.OpenBucket(ctx, s.bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog bucket %s", s.bucketURL)
	}
	defer bucket.Close()

	reader, err := bucket.NewReader(ctx, s.objectKey, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog object %s", s.objectKey)
	}
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read catalog document")
	}

	var records []entity.CatalogRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.Wrap(err, "failed to decode catalog document")
	}

	s.logger.Debug("Catalog document fetched",
		slog.Int("records", len(records)),
	)

	return records, nil
}
