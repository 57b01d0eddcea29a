package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"dealertrack/internal/models"
)

// GetZoneConfig godoc
// @Summary Get the zone duration table
// @Description Returns the per-zone standard and deviation day counts, ordered by zone.
// @Tags observations
// @Produce json
// @Success 200 {array} models.ZoneDuration "Current zone duration table"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /observations/zone-config [get]
func (h *Handler) GetZoneConfig(c *gin.Context) {
	zones, err := h.store.ZoneDurations()
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load zone duration table.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, zones)
}

// SaveZoneConfig godoc
// @Summary Replace the zone duration table
// @Description Upserts the per-zone standard and deviation day counts. Zones must be 1..4 with non-negative day counts and no duplicates.
// @Tags observations
// @Accept json
// @Produce json
// @Param config body models.SaveZoneConfigRequest true "Zone duration table to save"
// @Success 200 {array} models.ZoneDuration "Saved zone duration table"
// @Failure 400 {object} models.APIError "Bad Request"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /observations/zone-config [post]
func (h *Handler) SaveZoneConfig(c *gin.Context) {
	var req models.SaveZoneConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	seen := make(map[int]bool, len(req.Zones))
	for _, z := range req.Zones {
		if seen[z.Zone] {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Duplicate zone in payload.", gin.H{"zone": z.Zone})
			return
		}
		seen[z.Zone] = true
	}

	if err := h.store.SaveZoneDurations(req.Zones); err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to save zone duration table.", gin.H{"reason": err.Error()})
		return
	}

	zones, err := h.store.ZoneDurations()
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to reload zone duration table.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, zones)
}

// GetCodeMatrix godoc
// @Summary Get the observation code matrix
// @Description Returns every class/zone rule, ordered by class then zone.
// @Tags observations
// @Produce json
// @Success 200 {array} models.CodeMatrixEntry "Current code matrix"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /observations/code-matrix [get]
func (h *Handler) GetCodeMatrix(c *gin.Context) {
	entries, err := h.store.CodeMatrixEntries()
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load code matrix.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, entries)
}

// SaveCodeMatrix godoc
// @Summary Replace the observation code matrix
// @Description Replaces the whole matrix in one transaction. Every entry needs a class and a zone between 1 and 4; each class may mark at most one arrival zone.
// @Tags observations
// @Accept json
// @Produce json
// @Param matrix body models.SaveCodeMatrixRequest true "Code matrix to save"
// @Success 200 {array} models.CodeMatrixEntry "Saved code matrix"
// @Failure 400 {object} models.APIError "Bad Request"
// @Failure 409 {object} models.APIError "Conflict (duplicate class/zone pair)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /observations/code-matrix [post]
func (h *Handler) SaveCodeMatrix(c *gin.Context) {
	var req models.SaveCodeMatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	arrivals := make(map[string]int)
	for _, e := range req.Entries {
		if e.IsArrivalZone {
			arrivals[e.Class]++
			if arrivals[e.Class] > 1 {
				RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "A class may mark only one arrival zone.", gin.H{"class": e.Class})
				return
			}
		}
	}

	if err := h.store.ReplaceCodeMatrix(req.Entries); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			RespondWithError(c, http.StatusConflict, models.ErrorCodeConflict, "Duplicate class/zone pair in matrix.", gin.H{"reason": pqErr.Detail})
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to save code matrix.", gin.H{"reason": err.Error()})
		return
	}

	entries, err := h.store.CodeMatrixEntries()
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to reload code matrix.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, entries)
}

// ListExecutives godoc
// @Summary List executive assignments
// @Description Returns the salesperson to executive mapping, ordered by salesperson.
// @Tags executives
// @Produce json
// @Success 200 {array} models.ExecutiveAssignment "Current assignments"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /executives [get]
func (h *Handler) ListExecutives(c *gin.Context) {
	assignments, err := h.store.ExecutiveAssignments()
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load executive assignments.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, assignments)
}

// ReplaceExecutives godoc
// @Summary Replace the executive mapping
// @Description Replaces the whole salesperson to executive mapping in one transaction.
// @Tags executives
// @Accept json
// @Produce json
// @Param mapping body models.SaveExecutivesRequest true "Assignments to save"
// @Success 200 {array} models.ExecutiveAssignment "Saved assignments"
// @Failure 400 {object} models.APIError "Bad Request"
// @Failure 409 {object} models.APIError "Conflict (duplicate salesperson)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /executives [put]
func (h *Handler) ReplaceExecutives(c *gin.Context) {
	var req models.SaveExecutivesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	if err := h.store.ReplaceExecutives(req.Assignments); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			RespondWithError(c, http.StatusConflict, models.ErrorCodeConflict, "Duplicate salesperson in mapping.", gin.H{"reason": pqErr.Detail})
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to save executive assignments.", gin.H{"reason": err.Error()})
		return
	}

	assignments, err := h.store.ExecutiveAssignments()
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to reload executive assignments.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, assignments)
}

// DeleteExecutive godoc
// @Summary Remove one executive assignment
// @Description Removes the mapping for a salesperson.
// @Tags executives
// @Produce json
// @Param salesperson path string true "Salesperson name"
// @Success 204 "Assignment removed"
// @Failure 404 {object} models.APIError "Not Found"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /executives/{salesperson} [delete]
func (h *Handler) DeleteExecutive(c *gin.Context) {
	salesperson := c.Param("salesperson")
	if err := h.store.DeleteExecutive(salesperson); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeMappingNotFound, "No assignment for this salesperson.", gin.H{"salesperson": salesperson})
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to delete executive assignment.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusNoContent, nil)
}
