package report

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/analyses"
	"resume-screener/internal/shared/server/respond"
	"resume-screener/internal/shared/telemetry"
)

// Handler serves the downloadable report for the latest run.
type Handler struct {
	Runs *analyses.Service
}

// NewHandler constructs a Handler.
func NewHandler(runs *analyses.Service) *Handler {
	return &Handler{Runs: runs}
}

// RegisterRoutes attaches the report route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses/report", h.download)
}

func (h *Handler) download(c *gin.Context) {
	run, err := h.Runs.Latest(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, analyses.ErrNoRun):
			respond.Error(c, http.StatusNotFound, "not_found", "no analysis run yet", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to generate the report.", nil)
		}
		return
	}

	data, err := Build(run)
	if err != nil {
		telemetry.Error("report.generate.failed", map[string]any{
			"run_id": run.ID,
			"err":    err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to generate the report.", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ArtifactName+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
