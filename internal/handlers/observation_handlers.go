package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dealertrack/internal/models"
)

// RegisterChangeResponse returns the audit result of a code change.
type RegisterChangeResponse struct {
	Regression bool                  `json:"regression"`
	Stats      models.OperationStats `json:"stats"`
}

// RegisterChange godoc
// @Summary Register an observation code change
// @Description Appends the change to the audit trail, detects zone regressions (new zone below the previous one) and updates the per-operation stats. Once an operation accumulates more than one regression it is flagged suspicious and an alert is published.
// @Tags observations
// @Accept json
// @Produce json
// @Param change body models.RegisterChangeRequest true "Code change to record"
// @Success 201 {object} RegisterChangeResponse "Change recorded"
// @Failure 400 {object} models.APIError "Bad Request"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /observations/changes [post]
func (h *Handler) RegisterChange(c *gin.Context) {
	var req models.RegisterChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	before, err := h.store.OperationStats(req.Operation)
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load operation stats.", nil)
		return
	}

	stats, err := h.store.RecordChange(models.ObservationChange{
		Operation:    req.Operation,
		PreviousCode: req.PreviousCode,
		NewCode:      req.NewCode,
		PreviousZone: req.PreviousZone,
		NewZone:      req.NewZone,
		Executive:    req.Executive,
	})
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to record observation change.", gin.H{"reason": err.Error()})
		return
	}

	if stats.Suspicious && !before.Suspicious {
		if err := h.alerts.SuspiciousOperation(stats); err != nil {
			// The change is already recorded; a failed alert must not fail
			// the request.
			log.Printf("Error publishing suspicious-operation alert for %s: %v", stats.Operation, err)
		}
	}

	RespondWithSuccess(c, http.StatusCreated, RegisterChangeResponse{
		Regression: stats.RegressionCount > before.RegressionCount,
		Stats:      stats,
	})
}

// GetOperationStats godoc
// @Summary Get the audit stats of an operation
// @Description Returns change and regression counts plus the suspicious flag. Unknown operations return zero counts.
// @Tags observations
// @Produce json
// @Param operation path string true "Operation number"
// @Success 200 {object} models.OperationStats "Operation stats"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /observations/stats/{operation} [get]
func (h *Handler) GetOperationStats(c *gin.Context) {
	operation := c.Param("operation")
	stats, err := h.store.OperationStats(operation)
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load operation stats.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, stats)
}
