//go:build !integration

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/circuitbreaker"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/dto"
	"github.com/guttosm/kitchen-receipt-service/internal/i18n"
	"github.com/guttosm/kitchen-receipt-service/internal/middleware"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilderContext(t *testing.T, acceptLanguage string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)
	if acceptLanguage != "" {
		c.Request.Header.Set("Accept-Language", acceptLanguage)
	}
	middleware.RequestID()(c)
	return c, w
}

func TestResponseBuilder_Success(t *testing.T) {
	tests := []struct {
		name       string
		send       func(*ResponseBuilder)
		wantStatus int
	}{
		{"ok", func(b *ResponseBuilder) { b.SuccessOK(map[string]string{"k": "v"}) }, http.StatusOK},
		{"created", func(b *ResponseBuilder) { b.SuccessCreated(map[string]string{"k": "v"}) }, http.StatusCreated},
		{"explicit", func(b *ResponseBuilder) { b.Success(http.StatusAccepted, map[string]string{"k": "v"}) }, http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newBuilderContext(t, "")

			tt.send(NewResponseBuilder(c))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp dto.SuccessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, middleware.GetRequestID(c), resp.RequestID)
			assert.NotZero(t, resp.Timestamp)
			assert.Equal(t, map[string]interface{}{"k": "v"}, resp.Data)
		})
	}
}

func TestResponseBuilder_Text(t *testing.T) {
	c, w := newBuilderContext(t, "")

	NewResponseBuilder(c).Text(http.StatusOK, "TOTAL: $0\n")

	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "TOTAL: $0\n", w.Body.String())
}

func TestResponseBuilder_Error(t *testing.T) {
	tests := []struct {
		name           string
		acceptLanguage string
		statusCode     int
		messageKey     string
		err            error
		wantCode       string
		wantMessage    string
	}{
		{
			name:        "translated bad request",
			statusCode:  http.StatusBadRequest,
			messageKey:  i18n.ErrKeyInvalidReceiptRequest,
			wantCode:    dto.ErrCodeInvalidRequest,
			wantMessage: i18n.GetTranslator().Translate(i18n.ErrKeyInvalidReceiptRequest, i18n.DefaultLocale),
		},
		{
			name:           "portuguese",
			acceptLanguage: "pt-BR",
			statusCode:     http.StatusNotFound,
			messageKey:     i18n.ErrKeyMenuItemNotFound,
			err:            service.ErrMenuItemNotFound,
			wantCode:       dto.ErrCodeNotFound,
			wantMessage:    i18n.GetTranslator().Translate(i18n.ErrKeyMenuItemNotFound, "pt"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newBuilderContext(t, tt.acceptLanguage)

			NewResponseBuilder(c).Error(tt.statusCode, tt.messageKey, tt.err)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.True(t, c.IsAborted())
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.NotEmpty(t, resp.RequestID)
			if tt.err != nil {
				require.Len(t, c.Errors, 1)
				assert.ErrorIs(t, c.Errors.Last().Err, tt.err)
			} else {
				assert.Empty(t, c.Errors)
			}
		})
	}
}

func TestResponseBuilder_ErrorWithMessage(t *testing.T) {
	c, w := newBuilderContext(t, "")

	NewResponseBuilder(c).ErrorWithMessage(http.StatusConflict, "already printing", nil)

	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeConflict, resp.Error)
	assert.Equal(t, "already printing", resp.Message)
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no database", service.ErrRepositoryNotConfigured, http.StatusNotImplemented},
		{"invalid item", errors.Join(service.ErrInvalidMenuItem, errors.New("name is required")), http.StatusBadRequest},
		{"not found", service.ErrMenuItemNotFound, http.StatusNotFound},
		{"circuit open", circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable},
		{"probe in flight", circuitbreaker.ErrProbeInFlight, http.StatusServiceUnavailable},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newBuilderContext(t, "")

			writeServiceError(NewResponseBuilder(c), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
