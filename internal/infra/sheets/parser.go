// Package sheets implements the spreadsheet CSV import pipeline: fetching a
// published sheet export through a CORS-bypass proxy and parsing the CSV text
// into catalog records without a rigid schema.
package sheets

import (
	"strconv"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// parser implements service.SheetParser over ParseCatalog.
type parser struct{}

// NewParser creates the CSV catalog parser.
func NewParser() service.SheetParser {
	return parser{}
}

func (parser) ParseCatalog(csvText string) ([]entity.CatalogRecord, error) {
	return ParseCatalog(csvText)
}

// Canonical field names resolved from the header row.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldCategory    = "category"
	fieldImage       = "image"
	fieldWeight      = "weight"
	fieldProtein     = "protein"
	fieldFat         = "fat"
	fieldCarbs       = "carbs"
)

// columnNotFound is the sentinel index for an unresolved field.
const columnNotFound = -1

// fieldOrder fixes the resolution order; map iteration order is not stable.
var fieldOrder = []string{
	fieldName, fieldDescription, fieldPrice, fieldCategory, fieldImage,
	fieldWeight, fieldProtein, fieldFat, fieldCarbs,
}

// fieldAliases maps each canonical field to its accepted header spellings,
// most specific first. Sheets edited by the shop owners mix English and
// Russian column names, so both are accepted.
var fieldAliases = map[string][]string{
	fieldName:        {"название", "name", "товар", "продукт", "title"},
	fieldDescription: {"описание", "description", "опис", "desc"},
	fieldPrice:       {"цена", "price", "стоимость", "cost", "руб"},
	fieldCategory:    {"категория", "category", "тип", "вид", "type"},
	fieldImage:       {"фото", "photo", "изображение", "картинка", "image", "img", "иконка", "icon"},
	fieldWeight:      {"вес", "weight", "г", "грамм", "граммы"},
	fieldProtein:     {"белки", "protein", "белок", "протеин"},
	fieldFat:         {"жиры", "fat", "жир"},
	fieldCarbs:       {"углеводы", "carbs", "углевод", "carbohydrates"},
}

// noImageTokens are cell values meaning "no image"; they map to the default icon.
var noImageTokens = map[string]bool{
	"":    true,
	"-":   true,
	"нет": true,
}

// ParseCatalog parses CSV text into catalog records.
//
// The header row is matched against the alias table case-insensitively after
// trimming; name and price must both resolve or the import aborts with
// ErrMissingRequiredColumns. Data rows missing a name or pricing at zero or
// below are skipped silently. Surviving rows get their line index as the
// record identifier, unique within one import pass.
func ParseCatalog(csvText string) ([]entity.CatalogRecord, error) {
	lines := strings.Split(csvText, "\n")
	if len(lines) < 2 {
		return nil, service.ErrNoData
	}

	headers := splitFields(lines[0])
	for i, h := range headers {
		headers[i] = strings.ToLower(h)
	}

	columns := resolveColumns(headers)
	if columns[fieldName] == columnNotFound || columns[fieldPrice] == columnNotFound {
		return nil, service.ErrMissingRequiredColumns
	}

	var records []entity.CatalogRecord
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}

		values := splitFields(lines[i])

		name := fieldValue(values, columns[fieldName])
		if name == "" {
			continue
		}

		price := ParsePrice(fieldValue(values, columns[fieldPrice]))
		if price <= 0 {
			continue
		}

		records = append(records, entity.CatalogRecord{
			ID:          i, // row position within this import pass
			Name:        name,
			Description: fieldValue(values, columns[fieldDescription]),
			Price:       price,
			Category:    fieldValue(values, columns[fieldCategory]),
			Image:       cleanImage(fieldValue(values, columns[fieldImage])),
			Weight:      parseOptionalNumber(fieldValue(values, columns[fieldWeight])),
			Protein:     parseOptionalNumber(fieldValue(values, columns[fieldProtein])),
			Fat:         parseOptionalNumber(fieldValue(values, columns[fieldFat])),
			Carbs:       parseOptionalNumber(fieldValue(values, columns[fieldCarbs])),
		})
	}

	return records, nil
}

// resolveColumns maps each canonical field to the first header index matching
// any of its aliases, or columnNotFound.
func resolveColumns(headers []string) map[string]int {
	columns := make(map[string]int, len(fieldOrder))
	for _, field := range fieldOrder {
		columns[field] = columnNotFound
		for _, alias := range fieldAliases[field] {
			if idx := indexOf(headers, alias); idx != columnNotFound {
				columns[field] = idx

				break
			}
		}
	}

	return columns
}

func indexOf(headers []string, alias string) int {
	for i, h := range headers {
		if h == alias {
			return i
		}
	}

	return columnNotFound
}

// splitFields is a simple delimiter split; embedded commas inside quoted
// fields are not supported by the published export this targets.
func splitFields(line string) []string {
	fields := strings.Split(strings.TrimRight(line, "\r"), ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}

	return fields
}

func fieldValue(values []string, idx int) string {
	if idx == columnNotFound || idx >= len(values) {
		return ""
	}

	return values[idx]
}

// ParsePrice extracts a price from free-form cell text: every character that
// is not a digit, comma or period is stripped, commas are normalized to
// periods, and only the last separator counts as the decimal point (so
// "1,234.50 ₽" reads as 1234.50 and "199,90" as 199.90). Anything
// unparsable yields 0.
func ParsePrice(raw string) float64 {
	var cleaned strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			cleaned.WriteRune(r)
		}
	}

	normalized := strings.ReplaceAll(cleaned.String(), ",", ".")
	if first, last := strings.Index(normalized, "."), strings.LastIndex(normalized, "."); first != last {
		normalized = strings.ReplaceAll(normalized[:last], ".", "") + normalized[last:]
	}

	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}

	return price
}

// cleanImage strips surrounding quote characters and maps "no image" tokens
// to the default icon reference.
func cleanImage(raw string) string {
	cleaned := strings.TrimSpace(strings.NewReplacer(`"`, "", `'`, "").Replace(raw))
	if noImageTokens[strings.ToLower(cleaned)] {
		return entity.DefaultItemIcon
	}

	return cleaned
}

// parseOptionalNumber parses an optional positive numeric cell; anything
// missing, unparsable or non-positive is treated as absent.
func parseOptionalNumber(raw string) *float64 {
	if raw == "" {
		return nil
	}

	value := ParsePrice(raw)
	if value <= 0 {
		return nil
	}

	return &value
}
