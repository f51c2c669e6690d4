package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "agrirent/database/repository/user"
	"agrirent/models"
	"agrirent/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token and resolves the principal.
// A SHA-256 hash of the token is cached in Redis keyed by user id so repeat
// requests skip the user lookup; on a cache miss the user must exist and be
// active.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization",
			})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil

		if cacheEnabled {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil && cachedHash == computedHash {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				setPrincipal(c, userID, role)
				c.Next()
				return
			}
			if err != nil && err != redis.Nil {
				logger.Warn("auth cache lookup failed, falling back to DB",
					zap.Error(err))
			}
		}

		// Cache miss: confirm the principal still exists and is active.
		usr, err := users.GetByID(userID)
		if err != nil || usr == nil || !usr.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication error",
			})
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}

		setPrincipal(c, userID, role)
		c.Next()
	}
}

func setPrincipal(c *gin.Context, userID, role string) {
	c.Set("userID", userID)
	c.Set("role", role)
	c.Set("isAdmin", role == string(models.RoleAdmin))
}
