package main

import (
	"log"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/jobs"
	"github.com/yultimate/pavilion/internal/match"
	"github.com/yultimate/pavilion/internal/points"
	"github.com/yultimate/pavilion/internal/stats"
	"github.com/yultimate/pavilion/internal/team"
	"github.com/yultimate/pavilion/internal/tournament"
	"github.com/yultimate/pavilion/internal/user"
	"github.com/yultimate/pavilion/routes"
)

// @title Pavilion REST API
// @version 1.0
// @description Sports management backend with live cricket match scoring.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{},
		&team.Team{}, &team.TeamMember{},
		&tournament.Tournament{}, &tournament.TournamentTeam{}, &tournament.Achievement{},
		&match.TournamentMatch{}, &match.MatchState{}, &match.MatchPlayerStats{}, &match.BallEvent{},
		&stats.PlayerCareerStats{},
		&points.PointsTableEntry{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r, scoring := routes.SetupRoutes()

	scheduler := jobs.NewScheduler(scoring, match.NewGormMatchRepository(config.DB), cfg)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
