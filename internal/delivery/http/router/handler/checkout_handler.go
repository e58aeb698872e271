package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// CheckoutHandler holds dependencies for checkout-related handlers
type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// BeginCheckoutRequest represents the request body for starting checkout
type BeginCheckoutRequest struct {
	DeliveryMethod string `json:"delivery_method" validate:"omitempty,oneof=delivery pickup"`
}

// SubmitOrderRequest represents the checkout form submitted by the customer
type SubmitOrderRequest struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Address        string `json:"address"`
	PaymentMethod  string `json:"payment_method" validate:"required,oneof=cash card online"`
	DeliveryMethod string `json:"delivery_method" validate:"required,oneof=delivery pickup"`
}

// ScanQRRequest represents a scanned pickup QR payload
type ScanQRRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

// Begin handles starting a checkout session from the current cart
func (h *CheckoutHandler) Begin(c echo.Context) error {
	var req BeginCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ctx := c.Request().Context()
	quote, err := h.checkoutUC.Begin(ctx)
	if err != nil {
		return err
	}

	// Reprice under the requested delivery method when one was given.
	if req.DeliveryMethod != "" {
		quote, err = h.checkoutUC.Quote(ctx, entity.DeliveryMethod(req.DeliveryMethod))
		if err != nil {
			return err
		}
	}

	return response.Success(c, http.StatusOK, quote, "Checkout started")
}

// Submit handles finalizing the order
func (h *CheckoutHandler) Submit(c echo.Context) error {
	var req SubmitOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.checkoutUC.Submit(c.Request().Context(), &usecase.SubmitOrderInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Payment:  entity.PaymentMethod(req.PaymentMethod),
		Delivery: entity.DeliveryMethod(req.DeliveryMethod),
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, order, "Order submitted")
}

// LastOrder handles returning the most recently finalized order
func (h *CheckoutHandler) LastOrder(c echo.Context) error {
	order, err := h.checkoutUC.LastOrder(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, order, "")
}

// GetOrder handles looking an order up by its number
func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	order, err := h.checkoutUC.OrderByNumber(c.Request().Context(), c.Param("number"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, order, "")
}

// ScanQR handles resolving a scanned pickup QR payload to its order
func (h *CheckoutHandler) ScanQR(c echo.Context) error {
	var req ScanQRRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid scan input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.checkoutUC.ResolveScannedQR(c.Request().Context(), req.QRData)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, order, "")
}

// OrderQR handles rendering the pickup QR code PNG for an order
func (h *CheckoutHandler) OrderQR(c echo.Context) error {
	png, err := h.checkoutUC.OrderQR(c.Request().Context(), c.Param("number"))
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
