package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/kitchen-receipt-service/internal/circuitbreaker"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/dto"
	"github.com/guttosm/kitchen-receipt-service/internal/i18n"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
)

// writeServiceError maps catalog and archive errors onto HTTP statuses.
func writeServiceError(b *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, service.ErrRepositoryNotConfigured):
		b.Error(http.StatusNotImplemented, i18n.ErrKeyDatabaseNotConfigured, err)
	case errors.Is(err, service.ErrInvalidMenuItem):
		b.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidMenuItem, err,
			map[string]string{"items": err.Error()})
	case errors.Is(err, service.ErrMenuItemNotFound):
		b.Error(http.StatusNotFound, i18n.ErrKeyMenuItemNotFound, err)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen),
		errors.Is(err, circuitbreaker.ErrProbeInFlight),
		errors.Is(err, context.DeadlineExceeded):
		b.Error(http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable, err)
	default:
		b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// writeBindError reports a body that failed binding or validation.
func writeBindError(b *ResponseBuilder, messageKey string, err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		b.ErrorWithDetails(http.StatusBadRequest, messageKey, err,
			map[string]string{verr.Field: verr.Message})
		return
	}
	b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}
