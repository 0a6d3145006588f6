package service

import (
	"net/http"
	"strconv"

	"fleet-registry/lib/apperrors"
	"fleet-registry/services/fleet/models"

	"github.com/gin-gonic/gin"
)

func (s *FleetService) HandleRegister(c *gin.Context) {
	var input models.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := s.Register(c.Request.Context(), input)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (s *FleetService) HandleList(c *gin.Context) {
	params := ListParams{
		Page:      intQuery(c, "page", DefaultPage),
		Limit:     intQuery(c, "limit", DefaultLimit),
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	list, err := s.List(c.Request.Context(), params)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *FleetService) HandleGet(c *gin.Context) {
	vehicle, err := s.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (s *FleetService) HandleUpdate(c *gin.Context) {
	var input models.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := s.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (s *FleetService) HandleDelete(c *gin.Context) {
	if err := s.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}

func (s *FleetService) HandleStats(c *gin.Context) {
	stats, err := s.Stats(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// respondError keeps internal details out of responses: taxonomy errors
// travel with their message, everything else becomes an opaque 500.
func (s *FleetService) respondError(c *gin.Context, err error) {
	code := apperrors.StatusCode(err)
	if code == http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", c.FullPath()).Error("internal error")
		c.JSON(code, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
