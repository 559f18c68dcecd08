package middleware

import (
	"strings"

	"drivefund/models"
	"drivefund/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware validates admin JWT tokens. Tokens are issued by the
// platform's session service; only the signature, expiry and role claim are
// checked here.
func AdminMiddleware(vocabulary *models.StatusVocabulary) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authorization header required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAdminToken(tokenParts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired admin token")
			c.Abort()
			return
		}

		if !vocabulary.IsAdminRole(claims.Role) {
			utils.ForbiddenResponse(c, "Admin access required")
			c.Abort()
			return
		}

		utils.SetAdminClaimsInContext(c, claims)
		c.Next()
	}
}

// RequirePermission checks if admin has specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := utils.GetAdminClaimsFromContext(c)
		if !exists {
			utils.ForbiddenResponse(c, "Admin context not found")
			c.Abort()
			return
		}

		// Super admin has all permissions
		if models.NormalizeStatus(claims.Role) == "super_admin" {
			c.Next()
			return
		}

		if !utils.SliceContains(claims.Permissions, permission) {
			utils.ForbiddenResponse(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
