package match

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yultimate/pavilion/internal/tournament"
	"github.com/yultimate/pavilion/pkg/responses"
)

type MatchController struct {
	repo           MatchRepository
	tournamentRepo tournament.TournamentRepository
	service        *ScoringService
}

func NewMatchController(repo MatchRepository, tournamentRepo tournament.TournamentRepository, service *ScoringService) *MatchController {
	return &MatchController{repo: repo, tournamentRepo: tournamentRepo, service: service}
}

type CreateMatchRequest struct {
	TournamentID uint       `json:"tournament_id" binding:"required"`
	Team1ID      uint       `json:"team1_id" binding:"required"`
	Team2ID      uint       `json:"team2_id" binding:"required"`
	MatchNumber  int        `json:"match_number" binding:"required,min=1"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	Location     string     `json:"location" binding:"max=100"`
}

type StartMatchRequest struct {
	TossWonByTeamID    uint `json:"toss_won_by_team_id" binding:"required"`
	BattingFirstTeamID uint `json:"batting_first_team_id" binding:"required"`
}

type SetBatsmenRequest struct {
	Batsman1ID       uint `json:"batsman1_id" binding:"required"`
	Batsman2ID       uint `json:"batsman2_id" binding:"required"`
	CurrentStrikerID uint `json:"current_striker_id" binding:"required"`
}

type SetBowlerRequest struct {
	BowlerID uint `json:"bowler_id" binding:"required"`
}

type ScoreRequest struct {
	Runs *int `json:"runs" binding:"required,min=0,max=6"`
	// Sequence is the client's view of the total balls bowled so far.
	// When present, a mismatch rejects the delivery as a duplicate.
	Sequence *int `json:"sequence"`
}

type WicketRequest struct {
	NextBatsmanID      uint  `json:"next_batsman_id" binding:"required"`
	DismissedBatsmanID *uint `json:"dismissed_batsman_id"`
	Sequence           *int  `json:"sequence"`
}

type CompleteMatchRequest struct {
	ManOfTheMatchPlayerID *uint `json:"man_of_the_match_player_id"`
}

// sendScoringError maps the engine's error taxonomy onto HTTP statuses.
// State-machine violations and advisory end-of-innings signals are conflicts;
// bad participant selections are plain bad requests.
func sendScoringError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		responses.SendError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrAllOut),
		errors.Is(err, ErrOversExhausted),
		errors.Is(err, ErrEmptyRoster),
		errors.Is(err, ErrPlayersNotSet),
		errors.Is(err, ErrStaleSequence):
		responses.SendError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidParticipant),
		errors.Is(err, ErrInvalidBatsman),
		errors.Is(err, ErrInvalidBowler),
		errors.Is(err, ErrInvalidRuns):
		responses.SendError(c, http.StatusBadRequest, err.Error())
	default:
		responses.SendError(c, http.StatusInternalServerError, err.Error())
	}
}

func (mc *MatchController) matchID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

// CreateMatch godoc
// @Summary Schedule a match between two entered teams
// @Tags Matches
// @Accept json
// @Produce json
// @Param request body CreateMatchRequest true "Match payload"
// @Success 201 {object} responses.SuccessResponse{data=TournamentMatch}
// @Failure 400 {object} responses.ErrorResponse
// @Router /tournament-matches [post]
// @Security BearerAuth
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}
	if req.Team1ID == req.Team2ID {
		responses.SendError(c, http.StatusBadRequest, "A team cannot play against itself")
		return
	}

	t, err := mc.tournamentRepo.FindByID(req.TournamentID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch tournament: "+err.Error())
		return
	}
	if t == nil {
		responses.SendError(c, http.StatusNotFound, "Tournament not found")
		return
	}
	for _, teamID := range []uint{req.Team1ID, req.Team2ID} {
		entered, err := mc.tournamentRepo.HasTeam(req.TournamentID, teamID)
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to check entries: "+err.Error())
			return
		}
		if !entered {
			responses.SendError(c, http.StatusBadRequest, "Both teams must be entered in the tournament")
			return
		}
	}

	m := TournamentMatch{
		TournamentID: req.TournamentID,
		Team1ID:      req.Team1ID,
		Team2ID:      req.Team2ID,
		MatchNumber:  req.MatchNumber,
		ScheduledAt:  req.ScheduledAt,
		Location:     req.Location,
		Status:       StatusScheduled,
	}
	if err := mc.repo.CreateMatch(&m); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create match: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Match scheduled successfully", m)
}

// ListMatches godoc
// @Summary List matches
// @Tags Matches
// @Produce json
// @Param tournament_id query int false "Filter by tournament"
// @Param status query string false "Filter by status" Enums(scheduled, in_progress, completed, cancelled)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} responses.PaginatedResponse{data=[]TournamentMatch}
// @Router /tournament-matches [get]
// @Security BearerAuth
func (mc *MatchController) ListMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	tournamentID, _ := strconv.ParseUint(c.DefaultQuery("tournament_id", "0"), 10, 32)

	matches, total, err := mc.repo.ListMatches(uint(tournamentID), c.Query("status"), limit, (page-1)*limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to list matches: "+err.Error())
		return
	}

	responses.SendPaginated(c, http.StatusOK, matches, page, limit, total)
}

// GetMatch godoc
// @Summary Get a match
// @Tags Matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=TournamentMatch}
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournament-matches/{id} [get]
// @Security BearerAuth
func (mc *MatchController) GetMatch(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	m, err := mc.repo.FindMatchByID(id)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch match: "+err.Error())
		return
	}
	if m == nil {
		responses.SendError(c, http.StatusNotFound, "Match not found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", m)
}

// StartMatch godoc
// @Summary Start a scheduled match
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body StartMatchRequest true "Toss result"
// @Success 200 {object} responses.SuccessResponse{data=MatchState}
// @Failure 400 {object} responses.ErrorResponse "Team not a participant"
// @Failure 409 {object} responses.ErrorResponse "Match not in scheduled state"
// @Router /tournament-matches/{id}/start [post]
// @Security BearerAuth
func (mc *MatchController) StartMatch(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	var req StartMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	st, err := mc.service.Start(id, req.TossWonByTeamID, req.BattingFirstTeamID)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match started", st)
}

// SetBatsmen godoc
// @Summary Set the current batting pair and striker
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body SetBatsmenRequest true "Batting pair"
// @Success 200 {object} responses.SuccessResponse{data=MatchState}
// @Failure 400 {object} responses.ErrorResponse "Player not eligible"
// @Failure 409 {object} responses.ErrorResponse "Empty roster or assignment locked"
// @Router /tournament-matches/{id}/set-batsmen [post]
// @Security BearerAuth
func (mc *MatchController) SetBatsmen(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	var req SetBatsmenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	st, err := mc.service.SetBatsmen(id, req.Batsman1ID, req.Batsman2ID, req.CurrentStrikerID)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Batsmen set", st)
}

// SetBowler godoc
// @Summary Set the bowler for the upcoming over
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body SetBowlerRequest true "Bowler"
// @Success 200 {object} responses.SuccessResponse{data=MatchState}
// @Failure 400 {object} responses.ErrorResponse "Player not on bowling team"
// @Router /tournament-matches/{id}/set-bowler [post]
// @Security BearerAuth
func (mc *MatchController) SetBowler(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	var req SetBowlerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	st, err := mc.service.SetBowler(id, req.BowlerID)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Bowler set", st)
}

// AddScore godoc
// @Summary Record runs off one delivery
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body ScoreRequest true "Runs scored"
// @Success 200 {object} responses.SuccessResponse{data=MatchState}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Players not set, innings over, or stale sequence"
// @Router /tournament-matches/{id}/score [post]
// @Security BearerAuth
func (mc *MatchController) AddScore(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	st, err := mc.service.AddScore(id, *req.Runs, req.Sequence)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Score recorded", st)
}

// AddWicket godoc
// @Summary Record a dismissal
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body WicketRequest true "Incoming batsman and optional dismissed batsman"
// @Success 200 {object} responses.SuccessResponse{data=MatchState}
// @Failure 400 {object} responses.ErrorResponse "Incoming batsman not eligible"
// @Failure 409 {object} responses.ErrorResponse "All out or stale sequence"
// @Router /tournament-matches/{id}/wicket [post]
// @Security BearerAuth
func (mc *MatchController) AddWicket(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	var req WicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	st, err := mc.service.AddWicket(id, req.NextBatsmanID, req.DismissedBatsmanID, req.Sequence)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Wicket recorded", st)
}

// SwitchInnings godoc
// @Summary Switch to the second innings
// @Tags Scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchState}
// @Failure 409 {object} responses.ErrorResponse "Already in the second innings"
// @Router /tournament-matches/{id}/switch-innings [post]
// @Security BearerAuth
func (mc *MatchController) SwitchInnings(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	st, err := mc.service.SwitchInnings(id)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Innings switched", st)
}

// CompleteMatch godoc
// @Summary Complete a match and record the result
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body CompleteMatchRequest false "Optional man of the match"
// @Success 200 {object} responses.SuccessResponse{data=TournamentMatch}
// @Failure 409 {object} responses.ErrorResponse "Second innings not underway"
// @Router /tournament-matches/{id}/complete [post]
// @Security BearerAuth
func (mc *MatchController) CompleteMatch(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	var req CompleteMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.SendValidationError(c, err)
		return
	}

	m, err := mc.service.Complete(id, req.ManOfTheMatchPlayerID)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match completed", m)
}

// CancelMatch godoc
// @Summary Cancel a live match
// @Tags Scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=TournamentMatch}
// @Failure 409 {object} responses.ErrorResponse "Match not in progress"
// @Router /tournament-matches/{id}/cancel [post]
// @Security BearerAuth
func (mc *MatchController) CancelMatch(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	m, err := mc.service.Cancel(id)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match cancelled", m)
}

// GetState godoc
// @Summary Get the live scoring state
// @Tags Scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchState}
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournament-matches/{id}/state [get]
// @Security BearerAuth
func (mc *MatchController) GetState(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	st, err := mc.service.State(id)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", st)
}

// GetPlayerStats godoc
// @Summary Get per-player stats for a match
// @Tags Scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=[]MatchPlayerStats}
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournament-matches/{id}/player-stats [get]
// @Security BearerAuth
func (mc *MatchController) GetPlayerStats(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	rows, err := mc.service.PlayerStats(id)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", rows)
}

// GetBalls godoc
// @Summary Get the ball-by-ball ledger for a match
// @Tags Scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=[]BallEvent}
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournament-matches/{id}/balls [get]
// @Security BearerAuth
func (mc *MatchController) GetBalls(c *gin.Context) {
	id, ok := mc.matchID(c)
	if !ok {
		return
	}
	events, err := mc.service.Balls(id)
	if err != nil {
		sendScoringError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", events)
}
