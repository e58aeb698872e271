// Package entity contains the core business objects of the storefront.
package entity

import "strings"

// Default values applied to catalog records with missing attributes.
const (
	DefaultItemName        = "New item"
	DefaultItemDescription = "Delicious filled pancake"
	DefaultItemIcon        = "fas fa-pancakes"
	DefaultCategory        = "Other"
)

// photoFolderPrefix is where bare image filenames are resolved from.
const photoFolderPrefix = "data/items/"

// ImageKind classifies how a catalog item's image reference should be rendered.
type ImageKind string

const (
	// ImageKindIcon means the image reference is a stylesheet icon class.
	ImageKindIcon ImageKind = "icon"
	// ImageKindPhoto means the image reference resolves to a photo URL or file.
	ImageKindPhoto ImageKind = "photo"
)

var photoExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".svg", ".bmp"}

// iconPrefixes mark stylesheet icon classes, which are never photos.
var iconPrefixes = []string{"fas fa-", "fab fa-", "far fa-"}

// CatalogRecord is a loosely-typed catalog row as read from an external
// source (JSON document or CSV import), before defaults are applied.
type CatalogRecord struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Weight      *float64 `json:"weight,omitempty"`
	Protein     *float64 `json:"protein,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`
	Carbs       *float64 `json:"carbs,omitempty"`
	Composition string   `json:"composition,omitempty"`
}

// Normalize returns a copy of the record with defaults applied to every
// missing attribute. Prices are clamped at zero; callers decide whether a
// zero-priced record is acceptable.
func (r CatalogRecord) Normalize() CatalogRecord {
	if strings.TrimSpace(r.Name) == "" {
		r.Name = DefaultItemName
	} else {
		r.Name = strings.TrimSpace(r.Name)
	}
	if strings.TrimSpace(r.Description) == "" {
		r.Description = DefaultItemDescription
	}
	if r.Price < 0 {
		r.Price = 0
	}
	if strings.TrimSpace(r.Image) == "" {
		r.Image = DefaultItemIcon
	}
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultCategory
	}

	return r
}

// CatalogItem represents one sellable item. The image classification and the
// resolved photo path are computed once at construction and never re-derived;
// items are treated as immutable value objects afterwards.
type CatalogItem struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Weight      *float64 `json:"weight,omitempty"`  // grams
	Protein     *float64 `json:"protein,omitempty"` // grams per serving
	Fat         *float64 `json:"fat,omitempty"`
	Carbs       *float64 `json:"carbs,omitempty"`
	Composition string   `json:"composition,omitempty"`

	imageKind ImageKind
	photoPath string
}

// NewCatalogItem builds a catalog item from a raw record, applying field
// defaults and resolving the image reference.
func NewCatalogItem(rec CatalogRecord) *CatalogItem {
	rec = rec.Normalize()

	kind := classifyImage(rec.Image)

	return &CatalogItem{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price,
		Image:       rec.Image,
		Category:    rec.Category,
		Weight:      rec.Weight,
		Protein:     rec.Protein,
		Fat:         rec.Fat,
		Carbs:       rec.Carbs,
		Composition: rec.Composition,
		imageKind:   kind,
		photoPath:   resolvePhotoPath(rec.Image, kind),
	}
}

// ImageKind reports whether the item renders as an icon or a photo.
func (i *CatalogItem) ImageKind() ImageKind {
	return i.imageKind
}

// PhotoPath returns the resolved photo location, or an empty string for icons.
func (i *CatalogItem) PhotoPath() string {
	return i.photoPath
}

// Record converts the item back to its loosely-typed form, e.g. for snapshot
// persistence. Derived fields are not carried; they are recomputed on load.
func (i *CatalogItem) Record() CatalogRecord {
	return CatalogRecord{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		Image:       i.Image,
		Category:    i.Category,
		Weight:      i.Weight,
		Protein:     i.Protein,
		Fat:         i.Fat,
		Carbs:       i.Carbs,
		Composition: i.Composition,
	}
}

// classifyImage decides whether an image reference is a photo or an icon.
// It is a pure function of the reference string.
func classifyImage(image string) ImageKind {
	if image == "" {
		return ImageKindIcon
	}

	for _, prefix := range iconPrefixes {
		if strings.HasPrefix(image, prefix) {
			return ImageKindIcon
		}
	}

	if isExplicitURL(image) {
		return ImageKindPhoto
	}

	lower := strings.ToLower(image)
	for _, ext := range photoExtensions {
		if strings.Contains(lower, ext) {
			return ImageKindPhoto
		}
	}

	return ImageKindIcon
}

// resolvePhotoPath rewrites bare filenames under the asset folder; full URLs,
// data URIs and paths with directories pass through unchanged.
func resolvePhotoPath(image string, kind ImageKind) string {
	if image == "" || kind != ImageKindPhoto {
		return ""
	}

	if isExplicitURL(image) {
		return image
	}

	if strings.Contains(image, "/") {
		return image
	}

	return photoFolderPrefix + image
}

func isExplicitURL(image string) bool {
	return strings.HasPrefix(image, "http://") ||
		strings.HasPrefix(image, "https://") ||
		strings.HasPrefix(image, "data:image")
}
