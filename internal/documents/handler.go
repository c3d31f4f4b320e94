package documents

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/server/respond"
)

const (
	maxUploadBytes = 5 << 20 // 5MB per file, enforced by the upload surface
	pdfContentType = "application/pdf"
)

// Handler wires HTTP handlers to the documents service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches batch routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/batches", h.createBatch)
	rg.GET("/batches/current", h.current)
}

type documentView struct {
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	TextLength int    `json:"textLength"`
	Error      string `json:"error,omitempty"`
}

type batchView struct {
	BatchID   string         `json:"batchId"`
	Documents []documentView `json:"documents"`
}

func (h *Handler) createBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form is required", nil)
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "at least one file is required", nil)
		return
	}

	var incoming []IncomingFile
	var rejected []documentView

	for _, fh := range fileHeaders {
		if reason := rejectReason(fh.Filename, fh.Header.Get("Content-Type"), fh.Size); reason != "" {
			rejected = append(rejected, documentView{
				Name:   fh.Filename,
				Status: StatusRejected,
				Error:  reason,
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			rejected = append(rejected, documentView{
				Name:   fh.Filename,
				Status: StatusRejected,
				Error:  "unable to read file",
			})
			continue
		}
		defer f.Close()
		incoming = append(incoming, IncomingFile{Name: fh.Filename, Reader: f})
	}

	if len(incoming) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no acceptable PDF files in upload", rejected)
		return
	}

	batch, err := h.Svc.CreateBatch(c.Request.Context(), incoming)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "no files to process", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process upload", nil)
		}
		return
	}

	c.Set("batchId", batch.ID)
	c.Set("documentCount", len(batch.Documents))

	view := toBatchView(batch)
	view.Documents = append(view.Documents, rejected...)
	respond.Created(c, view)
}

func (h *Handler) current(c *gin.Context) {
	batch, err := h.Svc.Current(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNoBatch):
			respond.Error(c, http.StatusNotFound, "not_found", "no batch uploaded yet", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch batch", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toBatchView(batch))
}

func toBatchView(batch Batch) batchView {
	view := batchView{
		BatchID:   batch.ID,
		Documents: make([]documentView, 0, len(batch.Documents)),
	}
	for _, doc := range batch.Documents {
		view.Documents = append(view.Documents, documentView{
			DocumentID: doc.ID,
			Name:       doc.Name,
			Status:     doc.Status,
			TextLength: len(doc.Text),
			Error:      doc.Error,
		})
	}
	return view
}

// rejectReason applies the upload surface rules: PDF only, 5MB per file.
func rejectReason(fileName, contentType string, size int64) string {
	if size > maxUploadBytes {
		return "file exceeds 5MB limit"
	}
	clean := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if clean == pdfContentType {
		return ""
	}
	// Browsers occasionally omit or mangle the part content type.
	if clean == "" || clean == "application/octet-stream" {
		if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
			return ""
		}
	}
	return "only PDF files are accepted"
}
