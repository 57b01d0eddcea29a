package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dealertrack/internal/models"
	"dealertrack/internal/pipeline"
)

// ProcessResponse is returned after a successful processing run.
type ProcessResponse struct {
	RunID    string         `json:"run_id"`
	Stats    pipeline.Stats `json:"stats"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Process godoc
// @Summary Process the two spreadsheet exports
// @Description Joins the sales export with the logistics export, derives per-order fields and retains the result as a run.
// @Tags runs
// @Accept json
// @Produce json
// @Param sources body models.ProcessRequest true "Pre-parsed rows of both exports"
// @Success 201 {object} ProcessResponse "Run created"
// @Failure 400 {object} models.APIError "Bad Request (missing or empty source)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /process [post]
func (h *Handler) Process(c *gin.Context) {
	var req models.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	if len(req.PrimaryRows) == 0 {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeEmptySourceRows, "The sales export has no rows.", nil)
		return
	}
	if len(req.SecondaryRows) == 0 {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeEmptySourceRows, "The logistics export has no rows.", nil)
		return
	}

	executives, err := h.store.Executives()
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to load executive assignments.", nil)
		return
	}

	result := h.processor.Run(req.PrimaryRows, req.SecondaryRows, executives)
	runID := h.runs.Add(result)

	RespondWithSuccess(c, http.StatusCreated, ProcessResponse{
		RunID:    runID,
		Stats:    result.Stats,
		Warnings: result.Warnings,
	})
}

// RunRecordsResponse is the enriched, filtered view of one run.
type RunRecordsResponse struct {
	RunID    string                `json:"run_id"`
	Total    int                   `json:"total"`
	Filtered int                   `json:"filtered"`
	Records  []pipeline.RecordView `json:"records"`
}

// GetRunRecords godoc
// @Summary Get the enriched records of a run
// @Description Returns the run's records with zone computation and code validation, optionally filtered by executive and/or class. Records without an operation number are always excluded.
// @Tags runs
// @Produce json
// @Param run_id path string true "Run id"
// @Param executive query string false "Exact-match executive filter"
// @Param class query string false "Exact-match class filter"
// @Success 200 {object} RunRecordsResponse "Enriched records"
// @Failure 404 {object} models.APIError "Run not found"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /runs/{run_id}/records [get]
func (h *Handler) GetRunRecords(c *gin.Context) {
	runID := c.Param("run_id")
	result, ok := h.runs.Get(runID)
	if !ok {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeRunNotFound, "No run with this id.", gin.H{"run_id": runID})
		return
	}

	filtered := result.Filtered(pipeline.Filter{
		Executive: c.Query("executive"),
		Class:     c.Query("class"),
	})

	// Both configuration halves degrade independently: a load failure
	// leaves that half unloaded and the classifier reports sentinels.
	cfg, err := h.store.ZoneConfig()
	if err != nil {
		cfg = nil
	}
	matrix, err := h.store.CodeMatrix()
	if err != nil {
		matrix = nil
	}
	flagged, err := h.store.SuspiciousOperations()
	if err != nil {
		flagged = nil
	}

	RespondWithSuccess(c, http.StatusOK, RunRecordsResponse{
		RunID:    runID,
		Total:    len(result.Records),
		Filtered: len(filtered),
		Records:  pipeline.Enrich(filtered, cfg, matrix, flagged),
	})
}

// RunStatsResponse carries run statistics and aggregates.
type RunStatsResponse struct {
	RunID      string              `json:"run_id"`
	Stats      pipeline.Stats      `json:"stats"`
	Aggregates pipeline.Aggregates `json:"aggregates"`
}

// GetRunStats godoc
// @Summary Get run statistics
// @Description Returns the run's processing stats plus per-class, per-executive and location aggregates.
// @Tags runs
// @Produce json
// @Param run_id path string true "Run id"
// @Success 200 {object} RunStatsResponse "Run statistics"
// @Failure 404 {object} models.APIError "Run not found"
// @Router /runs/{run_id}/stats [get]
func (h *Handler) GetRunStats(c *gin.Context) {
	runID := c.Param("run_id")
	result, ok := h.runs.Get(runID)
	if !ok {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeRunNotFound, "No run with this id.", gin.H{"run_id": runID})
		return
	}
	RespondWithSuccess(c, http.StatusOK, RunStatsResponse{
		RunID:      runID,
		Stats:      result.Stats,
		Aggregates: result.Aggregate(),
	})
}

// ExportRun godoc
// @Summary Export a run as CSV
// @Description Downloads the processed table (header plus every record) as a CSV file.
// @Tags runs
// @Produce text/csv
// @Param run_id path string true "Run id"
// @Success 200 {string} string "CSV content"
// @Failure 404 {object} models.APIError "Run not found"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /runs/{run_id}/export [get]
func (h *Handler) ExportRun(c *gin.Context) {
	runID := c.Param("run_id")
	result, ok := h.runs.Get(runID)
	if !ok {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeRunNotFound, "No run with this id.", gin.H{"run_id": runID})
		return
	}

	var buf bytes.Buffer
	if err := result.ExportCSV(&buf); err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to export run.", gin.H{"reason": err.Error()})
		return
	}

	filename := fmt.Sprintf("SIAC_Procesado_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// DeleteRun godoc
// @Summary Delete a run
// @Description Drops a retained run from memory.
// @Tags runs
// @Produce json
// @Param run_id path string true "Run id"
// @Success 204 "Run deleted"
// @Failure 404 {object} models.APIError "Run not found"
// @Router /runs/{run_id} [delete]
func (h *Handler) DeleteRun(c *gin.Context) {
	runID := c.Param("run_id")
	if !h.runs.Delete(runID) {
		RespondWithError(c, http.StatusNotFound, models.ErrorCodeRunNotFound, "No run with this id.", gin.H{"run_id": runID})
		return
	}
	RespondWithSuccess(c, http.StatusNoContent, nil)
}
