package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/miccroten/quoteportal/internal/domain/model"
	pkgAuth "github.com/miccroten/quoteportal/internal/pkg/auth"
)

const (
	// ClaimsContextKey is a gin context key for the verified caller identity.
	ClaimsContextKey = "claims"
	authCookieName   = "quoteportal_token"
)

// ClaimsParser turns a session token into verified claims.
type ClaimsParser interface {
	ParseClaims(token string) (model.Claims, error)
}

// AuthRequired ensures the caller presented a valid session token before the
// handler runs.
func AuthRequired(parser ClaimsParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := parser.ParseClaims(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// RequireRole rejects callers whose verified role is below min. It must run
// after AuthRequired.
func RequireRole(min model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(ClaimsContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, ok := val.(model.Claims)
		if !ok || !claims.Role.Valid() {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !claims.Role.AtLeast(min) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string, secure bool) {
	c.SetCookie(authCookieName, token, 0, "/", "", secure, true)
	c.Header("Authorization", "Bearer "+token)
}
