package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yultimate/pavilion/config"
	"github.com/yultimate/pavilion/internal/match"
)

// Scheduler runs the periodic maintenance jobs. Currently that is a single
// hourly sweep that cancels matches left in progress for too long, so an
// abandoned scoring session does not block its tournament from ending.
type Scheduler struct {
	cron    *cron.Cron
	service *match.ScoringService
	repo    match.MatchRepository
	cfg     *config.Config
}

func NewScheduler(service *match.ScoringService, repo match.MatchRepository, cfg *config.Config) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))
	return &Scheduler{
		cron:    c,
		service: service,
		repo:    repo,
		cfg:     cfg,
	}
}

func (s *Scheduler) Start() error {
	log.Println("Starting job scheduler...")

	if _, err := s.cron.AddFunc("@hourly", s.sweepStaleMatches); err != nil {
		log.Printf("Error scheduling stale match sweep: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Job scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	log.Println("Stopping job scheduler...")
	s.cron.Stop()
}

// sweepStaleMatches cancels matches with no scoring activity for longer than
// the configured window. Cancelling goes through the scoring service so the
// usual state checks and stats cleanup apply.
func (s *Scheduler) sweepStaleMatches() {
	if s.cfg.Jobs.StaleMatchHours <= 0 {
		return
	}
	cutoff := time.Now().Add(-time.Duration(s.cfg.Jobs.StaleMatchHours) * time.Hour)

	stale, err := s.repo.StaleInProgress(cutoff)
	if err != nil {
		log.Printf("Stale match sweep failed: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	log.Printf("Stale match sweep: cancelling %d abandoned matches", len(stale))
	for _, m := range stale {
		if _, err := s.service.Cancel(m.ID); err != nil {
			log.Printf("Failed to cancel stale match %d: %v", m.ID, err)
		}
	}
}
