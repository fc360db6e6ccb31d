package handlers

import (
	"net/http"
	"strconv"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
	ratingService *services.RatingService
}

func NewPlayerHandler(playerService *services.PlayerService, ratingService *services.RatingService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		ratingService: ratingService,
	}
}

// CreatePlayer registers a new player
// @Summary Create a player
// @Tags players
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.playerService.CreatePlayer(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, player)
}

// GetPlayer returns one player
// @Summary Get a player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.Player
// @Failure 404 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayerByID(playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}

// GetPlayers retrieves players with pagination
// @Summary Get players with pagination
// @Tags players
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Success 200 {object} models.PaginatedPlayersResponse
// @Failure 400 {object} map[string]string
// @Router /players [get]
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	response, err := h.playerService.GetAllPlayers(page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPlayerRatings returns the player's live rating row for every team
// @Summary Get a player's ratings
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {array} models.PlayerTeamRating
// @Failure 404 {object} map[string]string
// @Router /players/{id}/ratings [get]
func (h *PlayerHandler) GetPlayerRatings(c *gin.Context) {
	playerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ratings, err := h.ratingService.GetPlayerRatings(playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// GetPlayerHistory returns the player's participation ledger, newest first
// @Summary Get a player's match history
// @Description Get the player's participation rows with before/after rating snapshots, newest first
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Param limit query int false "Number of entries to retrieve (default: 20, max: 100)"
// @Success 200 {array} models.MatchParticipation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /players/{id}/history [get]
func (h *PlayerHandler) GetPlayerHistory(c *gin.Context) {
	playerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	history, err := h.playerService.GetPlayerHistory(playerID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func parsePagination(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return 0, 0, false
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return 0, 0, false
	}
	if perPage > 100 {
		perPage = 100
	}

	return page, perPage, true
}
