package router

import (
	"net/http"

	"fleet-registry/lib/middlewares/auth"
	"fleet-registry/services/fleet/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SetupRouter wires the public auth endpoints and the session-gated vehicle
// resource. Every /vehicles route requires a live operator session.
func SetupRouter(router *gin.Engine, fleet interfaces.FleetInterface, authService interfaces.AuthInterface, redisClient *redis.Client) {
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	router.POST("/auth/login", authService.HandleLogin)
	router.POST("/auth/logout", auth.AuthMiddleware(redisClient), authService.HandleLogout)

	vehicles := router.Group("/vehicles")
	vehicles.Use(auth.AuthMiddleware(redisClient))
	{
		vehicles.POST("", fleet.HandleRegister)
		vehicles.GET("", fleet.HandleList)
		vehicles.GET("/stats", fleet.HandleStats)
		vehicles.GET("/:id", fleet.HandleGet)
		vehicles.PUT("/:id", fleet.HandleUpdate)
		vehicles.DELETE("/:id", fleet.HandleDelete)
	}
}
