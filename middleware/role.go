package middleware

import (
	"net/http"

	userRepo "agrirent/database/repository/user"
	"agrirent/models"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route to the listed platform roles. Admins pass every
// role gate.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.UserRole(c.GetString("role"))
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "You do not have permission to perform this action",
		})
	}
}

// RequireApprovedOwner gates owner routes to owners whose verification has
// been approved by an admin.
func RequireApprovedOwner(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool("isAdmin") {
			c.Next()
			return
		}
		if models.UserRole(c.GetString("role")) != models.RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You do not have permission to perform this action",
			})
			return
		}

		usr, err := users.GetByID(c.GetString("userID"))
		if err != nil || usr == nil || usr.OwnerProfile == nil ||
			usr.OwnerProfile.VerificationStatus != models.VerificationApproved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Owner account is not verified",
			})
			return
		}
		c.Next()
	}
}
