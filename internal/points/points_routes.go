package points

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/match"
	"github.com/yultimate/pavilion/internal/middleware"
	"github.com/yultimate/pavilion/internal/tournament"
)

// PointsRoutes registers the points table read view. Returns the calculator
// so the router can wire it into the scoring service and the tournament
// lifecycle.
func PointsRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) *Calculator {
	repo := NewGormPointsRepository(db)
	matchRepo := match.NewGormMatchRepository(db)
	tourRepo := tournament.NewGormTournamentRepository(db)
	calculator := NewCalculator(repo, matchRepo, tourRepo, cfg)
	controller := NewPointsController(calculator)

	auth := middleware.AuthMiddleware(cfg.JWT.Secret, db)
	router.GET("/tournaments/:id/points-table", auth, controller.GetPointsTable)

	return calculator
}
