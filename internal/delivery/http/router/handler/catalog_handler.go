package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	ImportUC  usecase.ImportUsecase
	Logger    *slog.Logger
}

// CatalogHandler holds dependencies for catalog-related handlers
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	importUC  usecase.ImportUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		importUC:  params.ImportUC,
		logger:    params.Logger,
	}
}

// CatalogItemView is the JSON shape of one catalog item.
type CatalogItemView struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	ImageKind   string   `json:"image_kind"`
	PhotoPath   string   `json:"photo_path,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Protein     *float64 `json:"protein,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`
	Carbs       *float64 `json:"carbs,omitempty"`
	Composition string   `json:"composition,omitempty"`
}

// ImportRequest represents the request body for a catalog import
type ImportRequest struct {
	SheetURL string `json:"sheet_url" validate:"omitempty,url"`
}

// ListItems handles listing the full catalog
func (h *CatalogHandler) ListItems(c echo.Context) error {
	items := h.catalogUC.GetAll(c.Request().Context())

	return response.Success(c, http.StatusOK, toItemViews(items), "")
}

// GetItem handles fetching a single catalog item by ID
func (h *CatalogHandler) GetItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Item ID must be an integer")
	}

	item, err := h.catalogUC.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toItemView(item), "")
}

// ListByCategory handles listing catalog items of one category
func (h *CatalogHandler) ListByCategory(c echo.Context) error {
	category := c.Param("category")
	items := h.catalogUC.GetByCategory(c.Request().Context(), category)

	return response.Success(c, http.StatusOK, toItemViews(items), "")
}

// Reload handles reloading the catalog from its configured source
func (h *CatalogHandler) Reload(c echo.Context) error {
	count, err := h.catalogUC.Reload(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]int{
		"loaded": count,
	}, "Catalog reloaded")
}

// Import handles running the spreadsheet import pipeline
func (h *CatalogHandler) Import(c echo.Context) error {
	var req ImportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid import input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	result, err := h.importUC.ImportFromSheet(c.Request().Context(), req.SheetURL)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, result, "Catalog imported")
}

func toItemView(item *entity.CatalogItem) CatalogItemView {
	return CatalogItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Image:       item.Image,
		ImageKind:   string(item.ImageKind()),
		PhotoPath:   item.PhotoPath(),
		Weight:      item.Weight,
		Protein:     item.Protein,
		Fat:         item.Fat,
		Carbs:       item.Carbs,
		Composition: item.Composition,
	}
}

func toItemViews(items []*entity.CatalogItem) []CatalogItemView {
	views := make([]CatalogItemView, 0, len(items))
	for _, item := range items {
		views = append(views, toItemView(item))
	}

	return views
}
