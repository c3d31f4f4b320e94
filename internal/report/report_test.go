package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	ledongthuc "github.com/ledongthuc/pdf"

	"resume-screener/internal/analyses"
)

func runWith(results ...analyses.Result) analyses.Run {
	run := analyses.Run{
		ID:             "run-1",
		JobDescription: "backend engineer",
		Results:        results,
		CreatedAt:      time.Now().UTC(),
	}
	for _, r := range results {
		if r.Status == analyses.ResultCompleted {
			run.Completed++
		} else {
			run.Failed++
		}
	}
	return run
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	r, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	return r.NumPage()
}

func TestBuildSingleEntryFitsOnePage(t *testing.T) {
	run := runWith(analyses.Result{
		DocumentID: "doc-0",
		Name:       "alice.pdf",
		Score:      72,
		Feedback:   "Relevance Score: 72\nStrong backend match.",
		Status:     analyses.ResultCompleted,
	})

	data, err := Build(run)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", data[:8])
	}
	if got := pageCount(t, data); got != 1 {
		t.Fatalf("got %d pages, want 1", got)
	}
}

func TestBuildPaginatesLongReports(t *testing.T) {
	long := strings.Repeat("Worked across distributed systems, observability and on-call rotations. ", 8)
	results := make([]analyses.Result, 0, 20)
	for i := 0; i < 20; i++ {
		results = append(results, analyses.Result{
			DocumentID: fmt.Sprintf("doc-%d", i),
			Name:       fmt.Sprintf("resume-%d.pdf", i),
			Score:      50 + i,
			Feedback:   long,
			Status:     analyses.ResultCompleted,
		})
	}

	data, err := Build(runWith(results...))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := pageCount(t, data); got < 2 {
		t.Fatalf("got %d pages, want at least 2", got)
	}

	// No text may land inside the reserved band above the page bottom. The
	// parsed coordinates are points with a bottom-left origin, so the band is
	// everything below bottomReserve converted from millimeters.
	const mmToPt = 72.0 / 25.4
	minY := (bottomReserve - 1) * mmToPt
	r, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		for _, txt := range page.Content().Text {
			if txt.Y < minY {
				t.Fatalf("page %d: text %q rendered at y=%.1fpt, inside the reserved bottom band (min %.1fpt)",
					pageNum, txt.S, txt.Y, minY)
			}
		}
	}
}

func TestBuildIncludesFailedEntries(t *testing.T) {
	run := runWith(
		analyses.Result{DocumentID: "doc-0", Name: "ok.pdf", Score: 81, Feedback: "fit", Status: analyses.ResultCompleted},
		analyses.Result{DocumentID: "doc-1", Name: "broken.pdf", Status: analyses.ResultFailed, Error: "the analysis timed out"},
	)

	data, err := Build(run)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty report")
	}
	if got := pageCount(t, data); got != 1 {
		t.Fatalf("got %d pages, want 1", got)
	}
}

func TestBuildEmptyRun(t *testing.T) {
	data, err := Build(runWith())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := pageCount(t, data); got != 1 {
		t.Fatalf("got %d pages, want 1", got)
	}
}
