package catalogsource

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileSource(t *testing.T, document string) *blobSource {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.json"), []byte(document), 0o600))

	return &blobSource{
		bucketURL: "file://" + dir,
		objectKey: "catalog.json",
		logger:    slog.New(slog.DiscardHandler),
	}
}

func TestBlobSource_FetchRecords(t *testing.T) {
	src := newFileSource(t, `[
		{"id": 1, "name": "Cottage cheese pancake", "price": 180, "image": "fas fa-cheese", "category": "Classic"},
		{"id": 2, "name": "Meat pancake", "price": 220, "image": "meat.jpg", "category": "Hearty", "weight": 300}
	]`)

	records, err := src.FetchRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "Cottage cheese pancake", records[0].Name)
	assert.Equal(t, 180.0, records[0].Price)
	require.NotNil(t, records[1].Weight)
	assert.Equal(t, 300.0, *records[1].Weight)
}

func TestBlobSource_MissingObject(t *testing.T) {
	src := newFileSource(t, "[]")
	src.objectKey = "missing.json"

	_, err := src.FetchRecords(context.Background())
	require.Error(t, err)
}

func TestBlobSource_MalformedDocument(t *testing.T) {
	src := newFileSource(t, "{not json")

	_, err := src.FetchRecords(context.Background())
	require.Error(t, err)
}
