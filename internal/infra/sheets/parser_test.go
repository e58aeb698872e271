package sheets

import (
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_SingleRow(t *testing.T) {
	records, err := ParseCatalog("Name,Price,Category\nBlin,150,Sweet\n")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "Blin", records[0].Name)
	assert.Equal(t, 150.0, records[0].Price)
	assert.Equal(t, "Sweet", records[0].Category)
}

func TestParseCatalog_RussianHeaders(t *testing.T) {
	csv := "Название,Цена,Категория,Фото\nБлин с творогом,180,Классические,pancake.jpg\n"

	records, err := ParseCatalog(csv)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Блин с творогом", records[0].Name)
	assert.Equal(t, 180.0, records[0].Price)
	assert.Equal(t, "Классические", records[0].Category)
	assert.Equal(t, "pancake.jpg", records[0].Image)
}

func TestParseCatalog_MissingRequiredColumns(t *testing.T) {
	records, err := ParseCatalog("Color,Size\nred,large\n")
	require.ErrorIs(t, err, service.ErrMissingRequiredColumns)
	assert.Nil(t, records)
}

func TestParseCatalog_FewerThanTwoLines(t *testing.T) {
	_, err := ParseCatalog("Name,Price")
	require.ErrorIs(t, err, service.ErrNoData)
}

func TestParseCatalog_SkipsInvalidRows(t *testing.T) {
	csv := "Name,Price\n" +
		"Good,100\n" +
		",200\n" + // no name
		"BadPrice,abc\n" + // price parses to 0
		"Free,0\n" + // non-positive price
		"\n" + // blank line
		"Another,50\n"

	records, err := ParseCatalog(csv)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Good", records[0].Name)
	assert.Equal(t, "Another", records[1].Name)
	// Identifiers come from line positions, so skipped rows leave gaps.
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, 6, records[1].ID)
}

func TestParseCatalog_OptionalFieldsAndImageCleanup(t *testing.T) {
	csv := "Name,Price,Photo,Weight,Protein\n" +
		"WithPhoto,100,\"burger.png\",250,12.5\n" +
		"NoPhoto,100,-,,\n"

	records, err := ParseCatalog(csv)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "burger.png", records[0].Image)
	require.NotNil(t, records[0].Weight)
	assert.Equal(t, 250.0, *records[0].Weight)
	require.NotNil(t, records[0].Protein)
	assert.Equal(t, 12.5, *records[0].Protein)

	assert.Equal(t, entity.DefaultItemIcon, records[1].Image)
	assert.Nil(t, records[1].Weight)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "plain integer", raw: "150", want: 150},
		{name: "currency symbol stripped", raw: "150 ₽", want: 150},
		{name: "comma is a decimal separator", raw: "199,90", want: 199.90},
		{name: "thousands and decimals", raw: "1,234.50 ₽", want: 1234.50},
		{name: "non-numeric", raw: "abc", want: 0},
		{name: "empty", raw: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.raw))
		})
	}
}
