package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/kitchen-receipt-service/internal/i18n"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
)

const bearerPrefix = "Bearer "

// JWTAuth returns a middleware that requires a valid bearer token.
func JWTAuth(validator service.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			abortUnauthorized(c, i18n.ErrKeyUnauthorized)
			return
		}
		authenticateBearer(c, validator)
	}
}

// authenticateBearer validates the Authorization header and stores the
// principal, or aborts with 401.
func authenticateBearer(c *gin.Context, validator service.TokenValidator) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		abortUnauthorized(c, i18n.ErrKeyInvalidToken)
		return
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if tokenString == "" {
		abortUnauthorized(c, i18n.ErrKeyInvalidToken)
		return
	}

	claims, err := validator.ValidateToken(tokenString)
	if err != nil {
		abortUnauthorized(c, i18n.ErrKeyInvalidToken)
		return
	}

	c.Set(string(PrincipalKey), &Principal{
		Subject: claims.Subject,
		Method:  AuthMethodBearer,
		Roles:   claims.Roles,
	})
	c.Next()
}
