package tournament

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/middleware"
	"github.com/yultimate/pavilion/internal/team"
	"github.com/yultimate/pavilion/pkg/rmiddleware"
)

// TournamentRoutes registers tournament lifecycle endpoints. The standings,
// leaderboard and match guard collaborators are injected by the router so the
// points and stats packages stay independent of this one.
func TournamentRoutes(
	router *gin.RouterGroup,
	db *gorm.DB,
	cfg *config.Config,
	standings StandingsProvider,
	leaderboard LeaderboardProvider,
	matchGuard MatchGuard,
) {
	repo := NewGormTournamentRepository(db)
	teamRepo := team.NewGormTeamRepository(db)
	controller := NewTournamentController(repo, teamRepo, standings, leaderboard, matchGuard)

	group := router.Group("/tournaments")
	group.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))
	{
		group.GET("", controller.ListTournaments)
		group.GET("/:id", controller.GetTournament)
		group.GET("/:id/achievements", controller.ListAchievements)

		group.POST("", rmiddleware.ManagerOrAdminMiddleware(), controller.CreateTournament)
		group.POST("/:id/teams", rmiddleware.ManagerOrAdminMiddleware(), controller.AddTeam)
		group.POST("/:id/start", rmiddleware.ManagerOrAdminMiddleware(), controller.StartTournament)
		group.POST("/:id/end", rmiddleware.ManagerOrAdminMiddleware(), controller.EndTournament)
	}
}
