package handlers

import (
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats returns global counters
// @Summary Get global statistics
// @Description Get totals for players, teams and matches plus 7-day activity counters
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
