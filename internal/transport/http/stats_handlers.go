package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StatsHandlers exposes live relay statistics.
type StatsHandlers struct {
	hub SessionHub
	log *zerolog.Logger
}

// NewStatsHandlers creates a new stats handlers instance.
func NewStatsHandlers(hub SessionHub, logger *zerolog.Logger) *StatsHandlers {
	return &StatsHandlers{hub: hub, log: logger}
}

// UserCountResponse is the body of the user count endpoint.
type UserCountResponse struct {
	Count int `json:"count"`
}

// UserCount returns the number of open sessions.
// GET /api/usercount
func (h *StatsHandlers) UserCount(c *gin.Context) {
	n := h.hub.Count()
	h.log.Debug().Int("count", n).Msg("user count requested")
	c.JSON(http.StatusOK, UserCountResponse{Count: n})
}
