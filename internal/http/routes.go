package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/middleware"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
)

// RouteGroup defines a group of routes that can be registered under /api.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// ReceiptRoutes registers the receipt endpoints.
type ReceiptRoutes struct {
	handler *ReceiptHandler
}

// NewReceiptRoutes creates a new ReceiptRoutes instance.
func NewReceiptRoutes(handler *ReceiptHandler) *ReceiptRoutes {
	return &ReceiptRoutes{handler: handler}
}

// RegisterRoutes registers the receipt endpoints. Any authenticated caller
// may format receipts.
func (r *ReceiptRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.POST("/receipts/kitchen", r.handler.GenerateKitchenReceipt)
	rg.GET("/receipts", r.handler.ListReceipts)
}

// MenuRoutes registers the menu endpoints.
type MenuRoutes struct {
	handler *MenuHandler
}

// NewMenuRoutes creates a new MenuRoutes instance.
func NewMenuRoutes(handler *MenuHandler) *MenuRoutes {
	return &MenuRoutes{handler: handler}
}

// RegisterRoutes registers the menu endpoints. With auth enabled, writes
// need the admin role.
func (r *MenuRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET("/menu", r.handler.GetMenu)

	writes := rg.Group("/menu")
	if cfg != nil && cfg.EnableAuth {
		writes.Use(middleware.RequireRole(service.RoleAdmin))
	}
	writes.POST("/refresh", r.handler.RefreshMenu)
	writes.PUT("/items", r.handler.UpsertItems)
	writes.DELETE("/items/:name", r.handler.DeleteItem)
}
