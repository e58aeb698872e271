// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Catalog routes
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("", r.catalogHandler.ListItems)
		catalogGroup.GET("/:id", r.catalogHandler.GetItem)
		catalogGroup.GET("/categories/:category", r.catalogHandler.ListByCategory)
		catalogGroup.POST("/reload", r.catalogHandler.Reload)
		catalogGroup.POST("/import", r.catalogHandler.Import)
	}

	// Cart routes
	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:id", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:id", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.Clear)
	}

	// Checkout and order routes
	checkoutGroup := e.Group("/checkout")
	{
		checkoutGroup.POST("", r.checkoutHandler.Begin)
		checkoutGroup.POST("/submit", r.checkoutHandler.Submit)
	}

	orderGroup := e.Group("/orders")
	{
		orderGroup.GET("/last", r.checkoutHandler.LastOrder)
		orderGroup.GET("/:number", r.checkoutHandler.GetOrder)
		orderGroup.GET("/:number/qr", r.checkoutHandler.OrderQR)
		orderGroup.POST("/scan", r.checkoutHandler.ScanQR)
	}
}
