package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/funeral-admin-api/internal/models"
	appErrors "github.com/noah-isme/funeral-admin-api/pkg/errors"
)

// RequireRoles lets through callers whose application role is one of roles. Anonymous callers
// get 401 with a login redirect, callers holding another role get 403 with a home redirect.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			deny(c, appErrors.ErrUnauthorized, RedirectLogin)
			return
		}
		if _, ok := allowed[claims.AppRole]; !ok {
			deny(c, appErrors.Clone(appErrors.ErrForbidden, "insufficient role"), RedirectHome)
			return
		}
		c.Next()
	}
}

// RequireBackOffice admits managers and admins.
func RequireBackOffice() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RoleManager)
}
