package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/dto"
	"github.com/guttosm/kitchen-receipt-service/internal/i18n"
)

// RequireRole returns a middleware that lets through principals holding any
// of roles. It must run after Authenticate or JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			abortUnauthorized(c, i18n.ErrKeyUnauthorized)
			return
		}

		for _, role := range roles {
			if principal.HasRole(role) {
				c.Next()
				return
			}
		}

		message := i18n.GetTranslator().Translate(i18n.ErrKeyForbidden, i18n.GetLocale(c))
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewError(dto.ErrCodeForbidden, message).WithRequestID(GetRequestID(c)))
	}
}
