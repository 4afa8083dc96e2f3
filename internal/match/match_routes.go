package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/middleware"
	"github.com/yultimate/pavilion/internal/team"
	"github.com/yultimate/pavilion/internal/tournament"
	"github.com/yultimate/pavilion/pkg/rmiddleware"
)

// MatchRoutes registers match CRUD and the live scoring endpoints. Scoring
// writes are manager or admin only; reads need any authenticated account.
// Returns the scoring service so the router can hand it to the background
// jobs.
func MatchRoutes(
	router *gin.RouterGroup,
	db *gorm.DB,
	cfg *config.Config,
	finalizer StatsFinalizer,
	recomputer PointsRecomputer,
) *ScoringService {
	repo := NewGormMatchRepository(db)
	teamRepo := team.NewGormTeamRepository(db)
	tournamentRepo := tournament.NewGormTournamentRepository(db)
	service := NewScoringService(repo, teamRepo, tournamentRepo, cfg, finalizer, recomputer)
	controller := NewMatchController(repo, tournamentRepo, service)

	group := router.Group("/tournament-matches")
	group.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))
	{
		group.GET("", controller.ListMatches)
		group.GET("/:id", controller.GetMatch)
		group.GET("/:id/state", controller.GetState)
		group.GET("/:id/player-stats", controller.GetPlayerStats)
		group.GET("/:id/balls", controller.GetBalls)

		write := group.Group("")
		write.Use(rmiddleware.ManagerOrAdminMiddleware())
		{
			write.POST("", controller.CreateMatch)
			write.POST("/:id/start", controller.StartMatch)
			write.POST("/:id/set-batsmen", controller.SetBatsmen)
			write.POST("/:id/set-bowler", controller.SetBowler)
			write.POST("/:id/score", controller.AddScore)
			write.POST("/:id/wicket", controller.AddWicket)
			write.POST("/:id/switch-innings", controller.SwitchInnings)
			write.POST("/:id/complete", controller.CompleteMatch)
			write.POST("/:id/cancel", controller.CancelMatch)
		}
	}

	return service
}
