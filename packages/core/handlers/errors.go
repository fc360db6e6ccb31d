package handlers

import (
	"errors"
	"net/http"

	"core/models"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses: validation 400,
// not found 404, busy team 409, cascade and everything else 500.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var cascadeErr *models.CascadeError

	switch {
	// Cascade failures outrank their wrapped cause: a replay that blew up
	// mid-history is an internal inconsistency, not a client mistake.
	case errors.As(err, &cascadeErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "rating recomputation failed",
			"match_id": cascadeErr.MatchID,
			"position": cascadeErr.Position,
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.Is(err, models.ErrTeamBusy):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrTeamBusy.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
