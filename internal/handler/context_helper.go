package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edustack/school-api/internal/middleware"
	"github.com/edustack/school-api/internal/models"
)

// currentClaims pulls the authenticated identity off the gin context.
func currentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}

// schoolScope resolves the tenant a request operates on: the caller's own
// school, or an explicit school_id query parameter for superadmins.
func schoolScope(c *gin.Context, claims *models.JWTClaims) string {
	if claims.Role == models.RoleSuperAdmin {
		if override := c.Query("school_id"); override != "" {
			return override
		}
	}
	return claims.SchoolID
}
