package handlers

import (
	"github.com/gin-gonic/gin"

	"dealertrack/internal/alerts"
	"dealertrack/internal/pipeline"
	"dealertrack/internal/runs"
	"dealertrack/internal/store"
)

// Handler wires the HTTP surface to the configuration store, the run
// store and the processing pipeline.
type Handler struct {
	store     *store.Store
	runs      *runs.Store
	processor *pipeline.Processor
	alerts    alerts.Publisher
}

func New(s *store.Store, r *runs.Store, p *pipeline.Processor, a alerts.Publisher) *Handler {
	return &Handler{store: s, runs: r, processor: p, alerts: a}
}

// RegisterRoutes mounts every API route under /api/v1.
func RegisterRoutes(router *gin.Engine, h *Handler) {
	v1 := router.Group("/api/v1")
	{
		observations := v1.Group("/observations")
		{
			observations.GET("/zone-config", h.GetZoneConfig)
			observations.POST("/zone-config", h.SaveZoneConfig)
			observations.GET("/code-matrix", h.GetCodeMatrix)
			observations.POST("/code-matrix", h.SaveCodeMatrix)
			observations.POST("/changes", h.RegisterChange)
			observations.GET("/stats/:operation", h.GetOperationStats)
		}

		executives := v1.Group("/executives")
		{
			executives.GET("", h.ListExecutives)
			executives.PUT("", h.ReplaceExecutives)
			executives.DELETE("/:salesperson", h.DeleteExecutive)
		}

		v1.POST("/process", h.Process)

		runGroup := v1.Group("/runs")
		{
			runGroup.GET("/:run_id/records", h.GetRunRecords)
			runGroup.GET("/:run_id/stats", h.GetRunStats)
			runGroup.GET("/:run_id/export", h.ExportRun)
			runGroup.DELETE("/:run_id", h.DeleteRun)
		}
	}
}
