package stats

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/middleware"
)

// StatsRoutes registers the leaderboard and career read views. Returns the
// aggregator so the router can wire it into the scoring service and the
// tournament lifecycle.
func StatsRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) *Aggregator {
	repo := NewGormStatsRepository(db)
	aggregator := NewAggregator(repo, cfg)
	controller := NewStatsController(aggregator)

	auth := middleware.AuthMiddleware(cfg.JWT.Secret, db)
	router.GET("/tournaments/:id/leaderboard", auth, controller.GetLeaderboard)
	router.GET("/players/:id/stats", auth, controller.GetPlayerCareer)

	return aggregator
}
