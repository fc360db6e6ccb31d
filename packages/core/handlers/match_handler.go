package handlers

import (
	"net/http"
	"strconv"
	"time"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
	editService  *services.MatchEditService
}

func NewMatchHandler(matchService *services.MatchService, editService *services.MatchEditService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		editService:  editService,
	}
}

// SubmitMatch records a new match result
// @Summary Submit a match
// @Description Record a squad-vs-squad match result and apply the rating update to every participant
// @Tags matches
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match result"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) SubmitMatch(c *gin.Context) {
	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.SubmitMatch(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// EditMatch rewrites a historical match and replays the affected tail
// @Summary Edit a match
// @Description Change a match's rosters, scores or weight; every later match is replayed so stored snapshots and live ratings match the corrected history
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param match body models.EditMatchRequest true "Corrected match"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id} [put]
func (h *MatchHandler) EditMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.EditMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.editService.EditMatch(matchID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// DeleteMatch removes a match and replays the affected tail
// @Summary Delete a match
// @Description Remove a match from history; later matches are replayed without it and participant ratings are corrected
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.editService.DeleteMatch(matchID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "match deleted"})
}

// GetMatch returns one match with its participation ledger
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}

	match, err := h.matchService.GetMatchByID(matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// GetRecentMatches retrieves the N most recent matches
// @Summary Get recent matches
// @Description Get the N most recent matches ordered by match date (newest first)
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatches retrieves matches with pagination and filters
// @Summary Get matches with pagination and filters
// @Tags matches
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param team_id query int false "Filter by team ID"
// @Param player_id query int false "Filter by player ID"
// @Param date_from query string false "Filter from date (YYYY-MM-DD format)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD format)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	filters := services.MatchFilters{
		Page:    page,
		PerPage: perPage,
	}

	if teamIDStr := c.Query("team_id"); teamIDStr != "" {
		teamID, err := strconv.ParseUint(teamIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team_id parameter"})
			return
		}
		teamIDUint := uint(teamID)
		filters.TeamID = &teamIDUint
	}

	if playerIDStr := c.Query("player_id"); playerIDStr != "" {
		playerID, err := strconv.ParseUint(playerIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player_id parameter"})
			return
		}
		playerIDUint := uint(playerID)
		filters.PlayerID = &playerIDUint
	}

	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		dateFrom, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from parameter"})
			return
		}
		filters.DateFrom = &dateFrom
	}

	if dateToStr := c.Query("date_to"); dateToStr != "" {
		dateTo, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to parameter"})
			return
		}
		filters.DateTo = &dateTo
	}

	response, err := h.matchService.GetMatches(filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMatchParticipations returns the before/after ledger rows of one match
// @Summary Get match participations
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {array} models.MatchParticipation
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/participations [get]
func (h *MatchHandler) GetMatchParticipations(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}

	participations, err := h.matchService.GetMatchParticipations(matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participations)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id parameter"})
		return 0, false
	}
	return uint(id), true
}
