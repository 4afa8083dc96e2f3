package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/auth"
	"github.com/yultimate/pavilion/internal/match"
	"github.com/yultimate/pavilion/internal/points"
	"github.com/yultimate/pavilion/internal/stats"
	"github.com/yultimate/pavilion/internal/team"
	"github.com/yultimate/pavilion/internal/tournament"
)

// SetupRoutes builds the engine and wires the domain packages together. The
// stats aggregator and points calculator are created first because the
// scoring service and the tournament lifecycle both hook into them. Returns
// the scoring service alongside the engine for the background jobs.
func SetupRoutes() (*gin.Engine, *match.ScoringService) {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":   "Pavilion API",
			"status": "ok",
			"docs":   "/swagger/index.html",
		})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := config.DB
	cfg := config.GetConfig()

	api := r.Group("/api")

	aggregator := stats.StatsRoutes(api, db, cfg)
	calculator := points.PointsRoutes(api, db, cfg)

	auth.AuthRoutes(api, db, cfg)
	team.TeamRoutes(api, db, cfg)

	matchRepo := match.NewGormMatchRepository(db)
	tournament.TournamentRoutes(api, db, cfg, calculator, aggregator, matchRepo)

	scoring := match.MatchRoutes(api, db, cfg, aggregator, calculator)

	return r, scoring
}
