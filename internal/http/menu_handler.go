package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/dto"
	"github.com/guttosm/kitchen-receipt-service/internal/i18n"
	"github.com/guttosm/kitchen-receipt-service/internal/middleware"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
)

// MenuHandler provides HTTP handlers for menu catalog routes.
type MenuHandler struct {
	catalog service.CatalogService
}

// NewMenuHandler creates a new MenuHandler instance.
func NewMenuHandler(catalog service.CatalogService) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// GetMenu handles GET /api/menu requests.
//
// @Summary      Get the menu
// @Description  Returns the catalog snapshot receipts are currently formatted against
// @Tags         Menu
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.MenuResponse} "Current menu"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/menu [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(dto.NewMenuResponse(h.catalog.Snapshot()))
}

// RefreshMenu handles POST /api/menu/refresh requests.
//
// @Summary      Refresh the menu
// @Description  Re-reads the menu from MongoDB if its change marker moved. The previous snapshot is kept on failure.
// @Tags         Menu
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse{data=dto.RefreshResponse} "Refresh outcome"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      503 {object} dto.ErrorResponse "Menu store unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/menu/refresh [post]
func (h *MenuHandler) RefreshMenu(c *gin.Context) {
	builder := NewResponseBuilder(c)

	result, err := h.catalog.Refresh(c.Request.Context())
	if err != nil {
		middleware.AuditLogError(c, middleware.AuditActionMenuRefresh, "Menu refresh failed", err, nil)
		writeServiceError(builder, err)
		return
	}

	middleware.AuditLog(c, middleware.AuditActionMenuRefresh, "Menu refreshed", map[string]interface{}{
		"source":  result.Source,
		"items":   result.Items,
		"changed": result.Changed,
	})
	builder.SuccessOK(newRefreshResponse(result))
}

// UpsertItems handles PUT /api/menu/items requests.
//
// @Summary      Create or replace menu items
// @Description  Stores the given items keyed by name, bumps the menu change marker and republishes the catalog. Supports idempotency via Idempotency-Key header.
// @Tags         Menu
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.UpsertMenuRequest true "Items to store"
// @Success      200 {object} dto.SuccessResponse{data=dto.RefreshResponse} "Catalog after the write"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid item"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      501 {object} dto.ErrorResponse "MongoDB is not configured"
// @Failure      503 {object} dto.ErrorResponse "Menu store unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/menu/items [put]
func (h *MenuHandler) UpsertItems(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.UpsertMenuRequest](c)
	if err != nil {
		writeBindError(builder, i18n.ErrKeyInvalidMenuItem, err)
		return
	}
	items, err := req.ToModel()
	if err != nil {
		writeBindError(builder, i18n.ErrKeyInvalidMenuItem, err)
		return
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	fields := map[string]interface{}{"items": len(items), "names": names}

	result, err := h.catalog.UpsertItems(c.Request.Context(), items)
	if err != nil {
		middleware.AuditLogError(c, middleware.AuditActionMenuUpsert, "Menu upsert failed", err, fields)
		writeServiceError(builder, err)
		return
	}

	middleware.AuditLog(c, middleware.AuditActionMenuUpsert, "Menu items upserted", fields)
	builder.SuccessOK(newRefreshResponse(result))
}

// DeleteItem handles DELETE /api/menu/items/:name requests.
//
// @Summary      Delete a menu item
// @Description  Removes the named item, bumps the menu change marker and republishes the catalog
// @Tags         Menu
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        name path string true "Menu item name"
// @Success      200 {object} dto.SuccessResponse{data=dto.RefreshResponse} "Catalog after the delete"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin role required"
// @Failure      404 {object} dto.ErrorResponse "No such menu item"
// @Failure      501 {object} dto.ErrorResponse "MongoDB is not configured"
// @Failure      503 {object} dto.ErrorResponse "Menu store unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/menu/items/{name} [delete]
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidMenuItem, nil,
			map[string]string{"name": "must not be blank"})
		return
	}
	fields := map[string]interface{}{"name": name}

	result, err := h.catalog.DeleteItem(c.Request.Context(), name)
	if err != nil {
		middleware.AuditLogError(c, middleware.AuditActionMenuDelete, "Menu delete failed", err, fields)
		writeServiceError(builder, err)
		return
	}

	middleware.AuditLog(c, middleware.AuditActionMenuDelete, "Menu item deleted", fields)
	builder.SuccessOK(newRefreshResponse(result))
}

func newRefreshResponse(r service.RefreshResult) dto.RefreshResponse {
	return dto.NewRefreshResponse(r.Source, r.Items, r.Marker, r.Changed, r.Diagnostics)
}
