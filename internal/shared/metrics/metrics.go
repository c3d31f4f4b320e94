package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	batchStartedTotal   atomic.Uint64
	batchCompletedTotal atomic.Uint64
	batchFailedTotal    atomic.Uint64

	resumeAnalyzedTotal      atomic.Uint64
	resumeAnalyzeFailedTotal atomic.Uint64
	rateLimitRetryTotal      atomic.Uint64

	batchDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncBatchStarted increments the started counter.
func IncBatchStarted() {
	batchStartedTotal.Add(1)
}

// IncBatchCompleted increments the completed counter.
func IncBatchCompleted() {
	batchCompletedTotal.Add(1)
}

// IncBatchFailed increments the failed counter.
func IncBatchFailed() {
	batchFailedTotal.Add(1)
}

// IncResumeAnalyzed increments the per-resume success counter.
func IncResumeAnalyzed() {
	resumeAnalyzedTotal.Add(1)
}

// IncResumeAnalyzeFailed increments the per-resume failure counter.
func IncResumeAnalyzeFailed() {
	resumeAnalyzeFailedTotal.Add(1)
}

// IncRateLimitRetry counts retries taken after a rate-limit signal.
func IncRateLimitRetry() {
	rateLimitRetryTotal.Add(1)
}

// ObserveBatchDurationMs records a batch duration in milliseconds.
func ObserveBatchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	batchDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "batch_started_total", "Total analysis batches started", batchStartedTotal.Load())
	writeCounter(&buf, "batch_completed_total", "Total analysis batches completed", batchCompletedTotal.Load())
	writeCounter(&buf, "batch_failed_total", "Total analysis batches failed", batchFailedTotal.Load())
	writeCounter(&buf, "resume_analyzed_total", "Total resumes analyzed", resumeAnalyzedTotal.Load())
	writeCounter(&buf, "resume_analyze_failed_total", "Total resume analyses failed", resumeAnalyzeFailedTotal.Load())
	writeCounter(&buf, "rate_limit_retry_total", "Total retries after upstream rate limits", rateLimitRetryTotal.Load())
	writeHistogram(&buf, "batch_duration_ms", "Batch duration in milliseconds", batchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
