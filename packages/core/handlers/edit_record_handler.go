package handlers

import (
	"net/http"
	"strconv"

	"core/services"

	"github.com/gin-gonic/gin"
)

type EditRecordHandler struct {
	editRecordService *services.EditRecordService
}

func NewEditRecordHandler(editRecordService *services.EditRecordService) *EditRecordHandler {
	return &EditRecordHandler{
		editRecordService: editRecordService,
	}
}

// GetRecentEditRecords retrieves the N most recent edit records
// @Summary Get recent edit records
// @Description Get the N most recent match edits and deletions, newest first
// @Tags edit-records
// @Produce json
// @Param limit query int false "Number of records to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.MatchEditRecord
// @Failure 400 {object} map[string]string
// @Router /edit-records/recent [get]
func (h *EditRecordHandler) GetRecentEditRecords(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	records, err := h.editRecordService.GetRecentEditRecords(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetMatchEditRecords returns the audit trail of one match
// @Summary Get a match's edit records
// @Tags edit-records
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {array} models.MatchEditRecord
// @Failure 400 {object} map[string]string
// @Router /matches/{id}/edits [get]
func (h *EditRecordHandler) GetMatchEditRecords(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}

	records, err := h.editRecordService.GetMatchEditRecords(matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
