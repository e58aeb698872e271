package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/config"
	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Config *config.Config
	Logger *slog.Logger
}

// CartHandler holds dependencies for cart-related handlers
type CartHandler struct {
	cartUC          usecase.CartUsecase
	maxLineQuantity int
	logger          *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	maxLineQuantity := 0
	if params.Config.Checkout != nil {
		maxLineQuantity = params.Config.Checkout.MaxLineQuantity
	}

	return &CartHandler{
		cartUC:          params.CartUC,
		maxLineQuantity: maxLineQuantity,
		logger:          params.Logger,
	}
}

// AddItemRequest represents the request body for adding an item to the cart
type AddItemRequest struct {
	ItemID   int `json:"item_id" validate:"required"`
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// UpdateQuantityRequest represents the request body for setting a line quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles returning the current cart summary
func (h *CartHandler) GetCart(c echo.Context) error {
	summary := h.cartUC.Summary(c.Request().Context())

	return response.Success(c, http.StatusOK, summary, "")
}

// AddItem handles adding an item to the cart
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if h.maxLineQuantity > 0 && req.Quantity > h.maxLineQuantity {
		return domainerrors.ErrQuantityTooLarge
	}

	if err := h.cartUC.AddItem(c.Request().Context(), req.ItemID, req.Quantity); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.cartUC.Summary(c.Request().Context()), "Item added")
}

// UpdateQuantity handles setting the quantity of a cart line
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Item ID must be an integer")
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}

	if h.maxLineQuantity > 0 && req.Quantity > h.maxLineQuantity {
		return domainerrors.ErrQuantityTooLarge
	}

	if err := h.cartUC.UpdateQuantity(c.Request().Context(), itemID, req.Quantity); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.cartUC.Summary(c.Request().Context()), "Quantity updated")
}

// RemoveItem handles removing a line from the cart
func (h *CartHandler) RemoveItem(c echo.Context) error {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Item ID must be an integer")
	}

	if err := h.cartUC.RemoveItem(c.Request().Context(), itemID); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.cartUC.Summary(c.Request().Context()), "Item removed")
}

// Clear handles emptying the cart
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.cartUC.Clear(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.cartUC.Summary(c.Request().Context()), "Cart cleared")
}
