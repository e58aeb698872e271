package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogRecord_NormalizeDefaults(t *testing.T) {
	rec := CatalogRecord{ID: 1, Price: -10}.Normalize()

	assert.Equal(t, DefaultItemName, rec.Name)
	assert.Equal(t, DefaultItemDescription, rec.Description)
	assert.Equal(t, DefaultItemIcon, rec.Image)
	assert.Equal(t, DefaultCategory, rec.Category)
	assert.Zero(t, rec.Price)
}

func TestCatalogRecord_NormalizeKeepsValues(t *testing.T) {
	rec := CatalogRecord{
		ID:          2,
		Name:        "  Ham and cheese  ",
		Description: "Savory classic",
		Price:       220,
		Image:       "ham.jpg",
		Category:    "Savory",
	}.Normalize()

	assert.Equal(t, "Ham and cheese", rec.Name)
	assert.Equal(t, "Savory classic", rec.Description)
	assert.Equal(t, "ham.jpg", rec.Image)
	assert.Equal(t, "Savory", rec.Category)
	assert.InDelta(t, 220.0, rec.Price, 0.001)
}

func TestNewCatalogItem_ImageClassification(t *testing.T) {
	tests := []struct {
		name      string
		image     string
		wantKind  ImageKind
		wantPhoto string
	}{
		{"icon class", "fas fa-pancakes", ImageKindIcon, ""},
		{"brand icon class", "fab fa-apple", ImageKindIcon, ""},
		{"regular icon class", "far fa-star", ImageKindIcon, ""},
		{"absolute URL", "https://cdn.example.com/p.jpg", ImageKindPhoto, "https://cdn.example.com/p.jpg"},
		{"plain http URL", "http://cdn.example.com/p.png", ImageKindPhoto, "http://cdn.example.com/p.png"},
		{"data URI", "data:image/png;base64,AAAA", ImageKindPhoto, "data:image/png;base64,AAAA"},
		{"bare filename", "pancake.webp", ImageKindPhoto, "data/items/pancake.webp"},
		{"uppercase extension", "PHOTO.JPG", ImageKindPhoto, "data/items/PHOTO.JPG"},
		{"relative path kept", "assets/special.png", ImageKindPhoto, "assets/special.png"},
		{"unrecognized token", "something", ImageKindIcon, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewCatalogItem(CatalogRecord{ID: 1, Name: "x", Price: 1, Image: tt.image})
			assert.Equal(t, tt.wantKind, item.ImageKind())
			assert.Equal(t, tt.wantPhoto, item.PhotoPath())
		})
	}
}

func TestCatalogItem_RecordRoundTrip(t *testing.T) {
	weight := 120.0
	item := NewCatalogItem(CatalogRecord{
		ID:       3,
		Name:     "Berry mix",
		Price:    240,
		Image:    "berry.jpg",
		Category: "Sweet",
		Weight:   &weight,
	})

	rec := item.Record()
	assert.Equal(t, 3, rec.ID)
	assert.Equal(t, "Berry mix", rec.Name)
	assert.Equal(t, "berry.jpg", rec.Image)
	assert.Equal(t, &weight, rec.Weight)

	// Rebuilding from the record re-derives the image fields.
	again := NewCatalogItem(rec)
	assert.Equal(t, item.ImageKind(), again.ImageKind())
	assert.Equal(t, item.PhotoPath(), again.PhotoPath())
}
