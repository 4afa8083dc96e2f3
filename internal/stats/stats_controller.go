package stats

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yultimate/pavilion/pkg/responses"
)

type StatsController struct {
	aggregator *Aggregator
}

func NewStatsController(aggregator *Aggregator) *StatsController {
	return &StatsController{aggregator: aggregator}
}

// GetLeaderboard godoc
// @Summary Get the tournament leaderboard
// @Tags Stats
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=[]LeaderboardEntry}
// @Router /tournaments/{id}/leaderboard [get]
// @Security BearerAuth
func (sc *StatsController) GetLeaderboard(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	entries, err := sc.aggregator.Leaderboard(uint(id))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to build leaderboard: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", entries)
}

// GetPlayerCareer godoc
// @Summary Get a player's career stats
// @Tags Stats
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse{data=CareerSummary}
// @Router /players/{id}/stats [get]
// @Security BearerAuth
func (sc *StatsController) GetPlayerCareer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid player ID")
		return
	}

	summary, err := sc.aggregator.Career(uint(id))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch career stats: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", summary)
}
