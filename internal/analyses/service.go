package analyses

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/documents"
	"resume-screener/internal/llm"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/telemetry"
)

const defaultConcurrency = 3

// Service runs analysis batches against the completion service.
type Service struct {
	LLM         llm.Client
	Repo        RunRepo
	Concurrency int
}

// RunBatch fans the documents out to the completion service through a bounded
// worker pool and joins the results indexed by input position, so output order
// always mirrors upload order. A failed document yields a failed Result; it
// does not discard its siblings.
func (s *Service) RunBatch(ctx context.Context, docs []documents.UploadedDocument, jobDescription string) (Run, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return Run{}, ErrNoJobDescription
	}
	if len(docs) == 0 {
		return Run{}, ErrNoDocuments
	}

	metrics.IncBatchStarted()
	start := time.Now()

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if concurrency > len(docs) {
		concurrency = len(docs)
	}

	results := make([]Result, len(docs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = s.analyzeOne(ctx, docs[idx], jobDescription)
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	run := Run{
		ID:             uuid.NewString(),
		JobDescription: jobDescription,
		Results:        results,
		CreatedAt:      time.Now().UTC(),
	}
	for _, r := range results {
		if r.Status == ResultCompleted {
			run.Completed++
		} else {
			run.Failed++
		}
	}

	metrics.ObserveBatchDurationMs(float64(time.Since(start).Milliseconds()))
	if run.Completed == 0 {
		metrics.IncBatchFailed()
	} else {
		metrics.IncBatchCompleted()
	}

	telemetry.Info("analyses.batch.complete", map[string]any{
		"run_id":      run.ID,
		"documents":   len(docs),
		"completed":   run.Completed,
		"failed":      run.Failed,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if err := s.Repo.Replace(ctx, run); err != nil {
		return Run{}, err
	}
	return run, nil
}

// Latest returns the most recent run.
func (s *Service) Latest(ctx context.Context) (Run, error) {
	return s.Repo.Latest(ctx)
}

func (s *Service) analyzeOne(ctx context.Context, doc documents.UploadedDocument, jobDescription string) Result {
	analysis, err := s.LLM.Analyze(ctx, doc.Text, jobDescription)
	if err != nil {
		metrics.IncResumeAnalyzeFailed()
		telemetry.Error("analyses.document.failed", map[string]any{
			"document_id": doc.ID,
			"name":        doc.Name,
			"err":         err.Error(),
		})
		return Result{
			DocumentID: doc.ID,
			Name:       doc.Name,
			Status:     ResultFailed,
			Error:      failureReason(err),
		}
	}

	metrics.IncResumeAnalyzed()
	return Result{
		DocumentID: doc.ID,
		Name:       doc.Name,
		Score:      analysis.Score,
		Feedback:   analysis.Feedback,
		Status:     ResultCompleted,
	}
}

// failureReason maps client errors to what the user sees; the wrapped cause
// stays in the logs.
func failureReason(err error) string {
	var rateErr *llm.RateLimitError
	if errors.As(err, &rateErr) {
		return "the analysis service is rate limiting requests; try again shortly"
	}
	var timeoutErr *llm.TimeoutError
	if errors.As(err, &timeoutErr) {
		return "the analysis timed out"
	}
	return "failed to analyze this resume"
}
