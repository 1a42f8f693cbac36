package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/dto"
	"github.com/guttosm/kitchen-receipt-service/internal/i18n"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
)

// ReceiptHandler provides HTTP handlers for receipt routes.
type ReceiptHandler struct {
	receipts service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler instance.
func NewReceiptHandler(receipts service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// GenerateKitchenReceipt handles POST /api/receipts/kitchen requests.
//
// @Summary      Format a kitchen receipt
// @Description  Formats the cart lines of an order into kitchen receipt text against the current menu. Lines that do not parse or are not on the menu are left off and listed in lines_skipped. Send Accept: text/plain to get the bare receipt text. Supports idempotency via Idempotency-Key header.
// @Tags         Receipts
// @Accept       json
// @Produce      json,plain
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.KitchenReceiptRequest true "Order to format"
// @Success      200 {object} dto.SuccessResponse{data=dto.KitchenReceiptResponse} "Formatted receipt"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      409 {object} dto.ErrorResponse "Conflict - same idempotency key in flight"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/receipts/kitchen [post]
func (h *ReceiptHandler) GenerateKitchenReceipt(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.KitchenReceiptRequest](c)
	if err != nil {
		writeBindError(builder, i18n.ErrKeyInvalidReceiptRequest, err)
		return
	}

	receipt := h.receipts.Generate(c.Request.Context(), req.ToModel())

	if wantsPlainText(c) {
		builder.Text(http.StatusOK, receipt.Text)
		return
	}
	builder.SuccessOK(dto.NewKitchenReceiptResponse(receipt))
}

// ListReceipts handles GET /api/receipts requests.
//
// @Summary      List archived receipts
// @Description  Returns the most recently archived receipts, newest first. Requires MongoDB.
// @Tags         Receipts
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        limit query int false "Maximum number of receipts" default(50)
// @Success      200 {object} dto.SuccessResponse{data=dto.ReceiptListResponse} "Archived receipts"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid limit"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      501 {object} dto.ErrorResponse "MongoDB is not configured"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/receipts [get]
func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l < 0 {
			builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err,
				map[string]string{"limit": "must be a non-negative integer"})
			return
		}
		limit = l
	}

	receipts, err := h.receipts.Recent(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(builder, err)
		return
	}

	builder.SuccessOK(dto.NewReceiptListResponse(receipts))
}

// wantsPlainText reports whether the client prefers text/plain over JSON.
func wantsPlainText(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	if !strings.Contains(accept, gin.MIMEPlain) {
		return false
	}
	return c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) == gin.MIMEPlain
}
