package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
	"github.com/noah-isme/funeral-admin-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// Redirect hints returned with auth failures so the client knows where to send the user.
const (
	RedirectLogin = "/login"
	RedirectHome  = "/"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid access token.
func JWT(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			deny(c, appErrors.ErrUnauthorized, RedirectLogin)
			return
		}

		claims, err := auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			deny(c, err, RedirectLogin)
			return
		}

		attach(c, claims)
		c.Next()
	}
}

// OptionalJWT attaches claims when present but does not block.
func OptionalJWT(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		if claims, err := auth.ValidateToken(c.Request.Context(), token); err == nil {
			attach(c, claims)
		}
		c.Next()
	}
}

// ClaimsFromContext returns the claims set by JWT, or nil.
func ClaimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}

func attach(c *gin.Context, claims *models.JWTClaims) {
	c.Set(ContextUserKey, claims)
	c.Request = c.Request.WithContext(models.WithActor(c.Request.Context(), claims))
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func deny(c *gin.Context, err error, redirect string) {
	response.Error(c, err, map[string]interface{}{"redirect": redirect})
	c.Abort()
}
