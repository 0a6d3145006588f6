package interfaces

import (
	"github.com/gin-gonic/gin"
)

type FleetInterface interface {
	HandleRegister(c *gin.Context)
	HandleList(c *gin.Context)
	HandleGet(c *gin.Context)
	HandleUpdate(c *gin.Context)
	HandleDelete(c *gin.Context)
	HandleStats(c *gin.Context)
}

type AuthInterface interface {
	HandleLogin(c *gin.Context)
	HandleLogout(c *gin.Context)
}
