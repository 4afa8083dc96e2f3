package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/middleware"
	"github.com/yultimate/pavilion/pkg/rmiddleware"
)

// TeamRoutes registers team CRUD and roster management endpoints.
// Creation and roster changes require a coach or admin account.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewGormTeamRepository(db)
	controller := NewTeamController(repo)

	group := router.Group("/teams")
	group.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))
	{
		group.GET("", controller.ListTeams)
		group.GET("/:id", controller.GetTeam)

		group.POST("", rmiddleware.CoachOrAdminMiddleware(), controller.CreateTeam)
		group.PUT("/:id", rmiddleware.CoachOrAdminMiddleware(), controller.UpdateTeam)
		group.POST("/:id/members", rmiddleware.CoachOrAdminMiddleware(), controller.AddMember)
		group.DELETE("/:id/members/:playerId", rmiddleware.CoachOrAdminMiddleware(), controller.RemoveMember)
	}
}
