package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService      *services.TeamService
	ratingService    *services.RatingService
	integrityService *services.IntegrityService
}

func NewTeamHandler(teamService *services.TeamService, ratingService *services.RatingService, integrityService *services.IntegrityService) *TeamHandler {
	return &TeamHandler{
		teamService:      teamService,
		ratingService:    ratingService,
		integrityService: integrityService,
	}
}

// CreateTeam registers a new team
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Param team body models.CreateTeamRequest true "Team"
// @Success 201 {object} models.Team
// @Failure 400 {object} map[string]string
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// GetTeam returns one team with its squads
// @Summary Get a team
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.Team
// @Failure 404 {object} map[string]string
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeamByID(teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// GetTeams retrieves teams with pagination
// @Summary Get teams with pagination
// @Tags teams
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Success 200 {object} models.PaginatedTeamsResponse
// @Failure 400 {object} map[string]string
// @Router /teams [get]
func (h *TeamHandler) GetTeams(c *gin.Context) {
	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	response, err := h.teamService.GetAllTeams(page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetLeaderboard returns the team's live rating rows ordered by elo
// @Summary Get a team's leaderboard
// @Description Get the team's live rating rows sorted by elo descending
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {array} models.PlayerTeamRating
// @Failure 404 {object} map[string]string
// @Router /teams/{id}/leaderboard [get]
func (h *TeamHandler) GetLeaderboard(c *gin.Context) {
	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	leaderboard, err := h.ratingService.GetTeamLeaderboard(teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

// CreateSquad registers a named squad within a team
// @Summary Create a squad
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param squad body models.CreateSquadRequest true "Squad"
// @Success 201 {object} models.Squad
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams/{id}/squads [post]
func (h *TeamHandler) CreateSquad(c *gin.Context) {
	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.CreateSquadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	squad, err := h.teamService.CreateSquad(teamID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, squad)
}

// GetSquads lists the team's squads
// @Summary Get a team's squads
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {array} models.Squad
// @Failure 404 {object} map[string]string
// @Router /teams/{id}/squads [get]
func (h *TeamHandler) GetSquads(c *gin.Context) {
	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	squads, err := h.teamService.GetTeamSquads(teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, squads)
}

// AuditIntegrity audits the team's snapshot chain on demand
// @Summary Audit a team's rating history
// @Description Walk the team's participation ledger and report every broken before/after link
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} services.IntegrityReport
// @Failure 404 {object} map[string]string
// @Router /teams/{id}/integrity [get]
func (h *TeamHandler) AuditIntegrity(c *gin.Context) {
	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	report, err := h.integrityService.AuditTeam(teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
