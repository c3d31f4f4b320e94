package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/documents"
	"resume-screener/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc  *Service
	Docs *documents.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, docs *documents.Service) *Handler {
	return &Handler{Svc: svc, Docs: docs}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.create)
	rg.GET("/analyses", h.latest)
}

type createRequest struct {
	JobDescription string `json:"jobDescription"`
}

type resultView struct {
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

type runView struct {
	RunID          string       `json:"runId"`
	JobDescription string       `json:"jobDescription"`
	Results        []resultView `json:"results"`
	Completed      int          `json:"completed"`
	Failed         int          `json:"failed"`
	CreatedAt      string       `json:"createdAt"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be JSON with a jobDescription field", nil)
		return
	}

	batch, err := h.Docs.Current(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNoBatch):
			respond.Error(c, http.StatusBadRequest, "validation_error", "upload resumes before starting an analysis", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to analyze resumes.", nil)
		}
		return
	}

	run, err := h.Svc.RunBatch(c.Request.Context(), batch.Extracted(), req.JobDescription)
	if err != nil {
		var vErr ValidationError
		switch {
		case errors.As(err, &vErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", vErr.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to analyze resumes.", nil)
		}
		return
	}

	c.Set("batchId", batch.ID)
	c.Set("documentCount", len(run.Results))
	respond.Created(c, toRunView(run))
}

func (h *Handler) latest(c *gin.Context) {
	run, err := h.Svc.Latest(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNoRun):
			respond.Error(c, http.StatusNotFound, "not_found", "no analysis run yet", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toRunView(run))
}

func toRunView(run Run) runView {
	view := runView{
		RunID:          run.ID,
		JobDescription: run.JobDescription,
		Results:        make([]resultView, 0, len(run.Results)),
		Completed:      run.Completed,
		Failed:         run.Failed,
		CreatedAt:      run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, r := range run.Results {
		view.Results = append(view.Results, resultView{
			DocumentID: r.DocumentID,
			Name:       r.Name,
			Score:      r.Score,
			Feedback:   r.Feedback,
			Status:     r.Status,
			Error:      r.Error,
		})
	}
	return view
}
