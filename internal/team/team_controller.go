package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yultimate/pavilion/internal/middleware"
	"github.com/yultimate/pavilion/internal/user"
	"github.com/yultimate/pavilion/pkg/responses"
)

type TeamController struct {
	repo TeamRepository
}

func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

type CreateTeamRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Sport string `json:"sport" binding:"required,min=2,max=50"`
	City  string `json:"city" binding:"max=100"`
}

type UpdateTeamRequest struct {
	Name string `json:"name" binding:"omitempty,min=2,max=100"`
	City string `json:"city" binding:"omitempty,max=100"`
}

type AddMemberRequest struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	Position string `json:"position" binding:"max=50"`
}

// CreateTeam godoc
// @Summary Create a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body CreateTeamRequest true "Team payload"
// @Success 201 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Team name already taken"
// @Router /teams [post]
// @Security BearerAuth
func (tc *TeamController) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	coachID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if existing, err := tc.repo.FindTeamByName(req.Name); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check team name: "+err.Error())
		return
	} else if existing != nil {
		responses.SendError(c, http.StatusConflict, "Team name already taken")
		return
	}

	team := Team{
		Name:    req.Name,
		Sport:   req.Sport,
		City:    req.City,
		CoachID: coachID,
	}
	if err := tc.repo.CreateTeam(&team); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create team: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", team)
}

// ListTeams godoc
// @Summary List teams
// @Tags Teams
// @Produce json
// @Param sport query string false "Filter by sport"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Router /teams [get]
// @Security BearerAuth
func (tc *TeamController) ListTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	teams, total, err := tc.repo.ListTeams(c.Query("sport"), limit, (page-1)*limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to list teams: "+err.Error())
		return
	}

	responses.SendPaginated(c, http.StatusOK, teams, page, limit, total)
}

// GetTeam godoc
// @Summary Get a team with its active roster
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{id} [get]
// @Security BearerAuth
func (tc *TeamController) GetTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid team ID")
		return
	}

	team, err := tc.repo.FindTeamByID(uint(id))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if team == nil {
		responses.SendError(c, http.StatusNotFound, "Team not found")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", team)
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{id} [put]
// @Security BearerAuth
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	team, err := tc.repo.FindTeamByID(uint(id))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if team == nil {
		responses.SendError(c, http.StatusNotFound, "Team not found")
		return
	}

	if !tc.canManage(c, team) {
		responses.SendError(c, http.StatusForbidden, "Only the team coach or an admin can modify this team")
		return
	}

	if req.Name != "" {
		team.Name = req.Name
	}
	if req.City != "" {
		team.City = req.City
	}
	if err := tc.repo.UpdateTeam(team); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update team: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", team)
}

// AddMember godoc
// @Summary Add a player to the team roster
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body AddMemberRequest true "Player to add"
// @Success 201 {object} responses.SuccessResponse{data=TeamMember}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Player already on roster"
// @Router /teams/{id}/members [post]
// @Security BearerAuth
func (tc *TeamController) AddMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	team, err := tc.repo.FindTeamByID(uint(id))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if team == nil {
		responses.SendError(c, http.StatusNotFound, "Team not found")
		return
	}
	if !tc.canManage(c, team) {
		responses.SendError(c, http.StatusForbidden, "Only the team coach or an admin can manage the roster")
		return
	}

	existing, err := tc.repo.FindMember(uint(id), req.PlayerID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check roster: "+err.Error())
		return
	}
	if existing != nil {
		if existing.IsActive {
			responses.SendError(c, http.StatusConflict, "Player already on roster")
			return
		}
		existing.IsActive = true
		existing.Position = req.Position
		if err := tc.repo.UpdateMember(existing); err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Failed to reactivate member: "+err.Error())
			return
		}
		responses.SendSuccess(c, http.StatusCreated, "Member reactivated", existing)
		return
	}

	member := TeamMember{
		TeamID:   uint(id),
		PlayerID: req.PlayerID,
		Position: req.Position,
		IsActive: true,
	}
	if err := tc.repo.AddMember(&member); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to add member: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Member added successfully", member)
}

// RemoveMember godoc
// @Summary Remove a player from the team roster
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Param playerId path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{id}/members/{playerId} [delete]
// @Security BearerAuth
func (tc *TeamController) RemoveMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid team ID")
		return
	}
	playerID, err := strconv.ParseUint(c.Param("playerId"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid player ID")
		return
	}

	team, err := tc.repo.FindTeamByID(uint(id))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if team == nil {
		responses.SendError(c, http.StatusNotFound, "Team not found")
		return
	}
	if !tc.canManage(c, team) {
		responses.SendError(c, http.StatusForbidden, "Only the team coach or an admin can manage the roster")
		return
	}

	member, err := tc.repo.FindMember(uint(id), uint(playerID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check roster: "+err.Error())
		return
	}
	if member == nil || !member.IsActive {
		responses.SendError(c, http.StatusNotFound, "Player is not on the roster")
		return
	}

	if err := tc.repo.DeactivateMember(uint(id), uint(playerID)); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to remove member: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Member removed successfully", nil)
}

func (tc *TeamController) canManage(c *gin.Context, team *Team) bool {
	role, err := middleware.GetRoleFromContext(c)
	if err == nil && role == user.RoleAdmin {
		return true
	}
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return false
	}
	return team.CoachID == userID
}
