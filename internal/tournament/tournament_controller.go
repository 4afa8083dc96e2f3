package tournament

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yultimate/pavilion/internal/middleware"
	"github.com/yultimate/pavilion/internal/team"
	"github.com/yultimate/pavilion/internal/user"
	"github.com/yultimate/pavilion/pkg/responses"
)

// StandingsProvider reports the leading team of a tournament from the points
// table. Implemented by the points calculator and injected at route setup.
type StandingsProvider interface {
	WinningTeam(tournamentID uint) (teamID uint, points int, err error)
}

// HonoursSummary carries the individual award winners of a tournament.
type HonoursSummary struct {
	TopScorerID           uint
	TopScorerRuns         int
	TopWicketTakerID      uint
	TopWicketTakerWickets int
}

// LeaderboardProvider computes tournament honours from aggregated player
// stats. Implemented by the stats aggregator and injected at route setup.
type LeaderboardProvider interface {
	TournamentHonours(tournamentID uint) (*HonoursSummary, error)
}

// MatchGuard reports how many matches of a tournament are still live, so a
// tournament cannot be ended underneath an in-progress match.
type MatchGuard interface {
	OpenMatchCount(tournamentID uint) (int64, error)
}

type TournamentController struct {
	repo        TournamentRepository
	teamRepo    team.TeamRepository
	standings   StandingsProvider
	leaderboard LeaderboardProvider
	matchGuard  MatchGuard
}

func NewTournamentController(
	repo TournamentRepository,
	teamRepo team.TeamRepository,
	standings StandingsProvider,
	leaderboard LeaderboardProvider,
	matchGuard MatchGuard,
) *TournamentController {
	return &TournamentController{
		repo:        repo,
		teamRepo:    teamRepo,
		standings:   standings,
		leaderboard: leaderboard,
		matchGuard:  matchGuard,
	}
}

type CreateTournamentRequest struct {
	Name          string     `json:"name" binding:"required,min=2,max=100"`
	Sport         string     `json:"sport" binding:"required,min=2,max=50"`
	OversPerMatch int        `json:"overs_per_match" binding:"omitempty,min=1,max=50"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
}

type AddTournamentTeamRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
}

// CreateTournament godoc
// @Summary Create a tournament
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param request body CreateTournamentRequest true "Tournament payload"
// @Success 201 {object} responses.SuccessResponse{data=Tournament}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Name already taken"
// @Router /tournaments [post]
// @Security BearerAuth
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	managerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if existing, err := tc.repo.FindByName(req.Name); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check tournament name: "+err.Error())
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "Tournament name already taken")
		return
	}

	overs := req.OversPerMatch
	if overs == 0 {
		overs = 20
	}

	t := Tournament{
		Name:          req.Name,
		Sport:         req.Sport,
		Status:        StatusUpcoming,
		ManagerID:     managerID,
		OversPerMatch: overs,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
	if err := tc.repo.Create(&t); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create tournament: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Tournament created successfully", t)
}

// ListTournaments godoc
// @Summary List tournaments
// @Tags Tournaments
// @Produce json
// @Param status query string false "Filter by status" Enums(upcoming, ongoing, completed)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} responses.PaginatedResponse{data=[]Tournament}
// @Router /tournaments [get]
// @Security BearerAuth
func (tc *TournamentController) ListTournaments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tournaments, total, err := tc.repo.List(c.Query("status"), limit, (page-1)*limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to list tournaments: "+err.Error())
		return
	}

	responses.SendPaginated(c, http.StatusOK, tournaments, page, limit, total)
}

// GetTournament godoc
// @Summary Get a tournament with its entered teams
// @Tags Tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=Tournament}
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournaments/{id} [get]
// @Security BearerAuth
func (tc *TournamentController) GetTournament(c *gin.Context) {
	t, ok := tc.fetch(c)
	if !ok {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", t)
}

// AddTeam godoc
// @Summary Enter a team into a tournament
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param request body AddTournamentTeamRequest true "Team to enter"
// @Success 201 {object} responses.SuccessResponse{data=TournamentTeam}
// @Failure 400 {object} responses.ErrorResponse "Sport mismatch"
// @Failure 409 {object} responses.ErrorResponse "Tournament already started or team already entered"
// @Router /tournaments/{id}/teams [post]
// @Security BearerAuth
func (tc *TournamentController) AddTeam(c *gin.Context) {
	t, ok := tc.fetch(c)
	if !ok {
		return
	}

	var req AddTournamentTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if !tc.canManage(c, t) {
		responses.SendError(c, http.StatusForbidden, "Only the tournament manager or an admin can enter teams")
		return
	}
	if t.Status != StatusUpcoming {
		responses.SendError(c, http.StatusConflict, "Teams can only be entered before the tournament starts")
		return
	}

	entrant, err := tc.teamRepo.FindTeamByID(req.TeamID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if entrant == nil {
		responses.SendError(c, http.StatusNotFound, "Team not found")
		return
	}
	if !strings.EqualFold(entrant.Sport, t.Sport) {
		responses.SendError(c, http.StatusBadRequest, "Team sport does not match tournament sport")
		return
	}

	if already, err := tc.repo.HasTeam(t.ID, req.TeamID); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check entries: "+err.Error())
		return
	} else if already {
		responses.SendError(c, http.StatusConflict, "Team already entered in this tournament")
		return
	}

	entry := TournamentTeam{TournamentID: t.ID, TeamID: req.TeamID}
	if err := tc.repo.AddTeam(&entry); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to enter team: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Team entered successfully", entry)
}

// StartTournament godoc
// @Summary Start a tournament
// @Tags Tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=Tournament}
// @Failure 409 {object} responses.ErrorResponse "Not upcoming, or fewer than two teams entered"
// @Router /tournaments/{id}/start [post]
// @Security BearerAuth
func (tc *TournamentController) StartTournament(c *gin.Context) {
	t, ok := tc.fetch(c)
	if !ok {
		return
	}
	if !tc.canManage(c, t) {
		responses.SendError(c, http.StatusForbidden, "Only the tournament manager or an admin can start the tournament")
		return
	}
	if t.Status != StatusUpcoming {
		responses.SendError(c, http.StatusConflict, "Tournament has already started or finished")
		return
	}
	if len(t.Teams) < 2 {
		responses.SendError(c, http.StatusConflict, "At least two teams must be entered before starting")
		return
	}

	now := time.Now()
	t.Status = StatusOngoing
	if t.StartDate == nil {
		t.StartDate = &now
	}
	if err := tc.repo.Update(t); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to start tournament: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Tournament started", t)
}

// EndTournament godoc
// @Summary End a tournament and record achievements
// @Tags Tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Achievement}
// @Failure 409 {object} responses.ErrorResponse "Not ongoing, or matches still live"
// @Router /tournaments/{id}/end [post]
// @Security BearerAuth
func (tc *TournamentController) EndTournament(c *gin.Context) {
	t, ok := tc.fetch(c)
	if !ok {
		return
	}
	if !tc.canManage(c, t) {
		responses.SendError(c, http.StatusForbidden, "Only the tournament manager or an admin can end the tournament")
		return
	}
	if t.Status != StatusOngoing {
		responses.SendError(c, http.StatusConflict, "Only an ongoing tournament can be ended")
		return
	}

	open, err := tc.matchGuard.OpenMatchCount(t.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check live matches: "+err.Error())
		return
	}
	if open > 0 {
		responses.SendError(c, http.StatusConflict, "All matches must be completed or cancelled before ending the tournament")
		return
	}

	var achievements []Achievement

	winnerID, points, err := tc.standings.WinningTeam(t.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to read standings: "+err.Error())
		return
	}
	if winnerID != 0 {
		achievements = append(achievements, Achievement{
			TournamentID: t.ID,
			Title:        "Tournament Winner",
			TeamID:       &winnerID,
			Value:        points,
		})
	}

	honours, err := tc.leaderboard.TournamentHonours(t.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to read leaderboard: "+err.Error())
		return
	}
	if honours != nil {
		if honours.TopScorerID != 0 {
			id := honours.TopScorerID
			achievements = append(achievements, Achievement{
				TournamentID: t.ID,
				Title:        "Top Scorer",
				PlayerID:     &id,
				Value:        honours.TopScorerRuns,
			})
		}
		if honours.TopWicketTakerID != 0 {
			id := honours.TopWicketTakerID
			achievements = append(achievements, Achievement{
				TournamentID: t.ID,
				Title:        "Most Wickets",
				PlayerID:     &id,
				Value:        honours.TopWicketTakerWickets,
			})
		}
	}

	if err := tc.repo.CreateAchievements(achievements); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to record achievements: "+err.Error())
		return
	}

	now := time.Now()
	t.Status = StatusCompleted
	t.EndDate = &now
	if err := tc.repo.Update(t); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to end tournament: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Tournament ended", achievements)
}

// ListAchievements godoc
// @Summary List the achievements of a tournament
// @Tags Tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=[]Achievement}
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournaments/{id}/achievements [get]
// @Security BearerAuth
func (tc *TournamentController) ListAchievements(c *gin.Context) {
	t, ok := tc.fetch(c)
	if !ok {
		return
	}

	achievements, err := tc.repo.ListAchievements(t.ID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to list achievements: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", achievements)
}

func (tc *TournamentController) fetch(c *gin.Context) (*Tournament, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid tournament ID")
		return nil, false
	}
	t, err := tc.repo.FindByID(uint(id))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch tournament: "+err.Error())
		return nil, false
	}
	if t == nil {
		responses.SendError(c, http.StatusNotFound, "Tournament not found")
		return nil, false
	}
	return t, true
}

func (tc *TournamentController) canManage(c *gin.Context, t *Tournament) bool {
	role, err := middleware.GetRoleFromContext(c)
	if err == nil && role == user.RoleAdmin {
		return true
	}
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return false
	}
	return t.ManagerID == userID
}
