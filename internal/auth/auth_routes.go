package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/middleware"
)

// AuthRoutes registers the public auth endpoints and the protected profile read.
func AuthRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewGormAuthRepository(db)
	controller := NewAuthController(repo, cfg)

	group := router.Group("/auth")
	{
		group.POST("/register", controller.Register)
		group.POST("/login", controller.Login)
		group.GET("/profile", middleware.AuthMiddleware(cfg.JWT.Secret, db), controller.GetProfile)
	}
}
