package auth

import (
	"net/http"
	"strings"

	"fleet-registry/lib/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const SessionKeyPrefix = "session:"

// AuthMiddleware gates a route group behind a bearer token. The token must
// carry a valid signature and reference a session that still exists in Redis,
// so logout revokes it immediately regardless of the JWT expiry.
func AuthMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == "" || tokenStr == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
			return
		}

		session, err := token.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
			return
		}

		exists, err := redisClient.Exists(c.Request.Context(), SessionKeyPrefix+session.SessionID).Result()
		if err != nil || exists == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set("operator", session)
		c.Next()
	}
}
