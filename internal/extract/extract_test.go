package extract

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"resume-screener/internal/shared/storage/object/local"
)

func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, content := range pages {
		doc.AddPage()
		doc.Cell(0, 10, content)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytesSinglePage(t *testing.T) {
	data := buildPDF(t, "Backend engineer resume")

	text, err := FromBytes(context.Background(), data, "resume.pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Backend") {
		t.Fatalf("expected extracted text to contain page content, got %q", text)
	}
}

func TestFromBytesPagesSeparatedByNewline(t *testing.T) {
	data := buildPDF(t, "first page", "second page")

	text, err := FromBytes(context.Background(), data, "resume.pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "\n") {
		t.Fatalf("expected newline between pages, got %q", text)
	}
	parts := strings.SplitN(text, "\n", 2)
	if !strings.Contains(parts[0], "first") || !strings.Contains(parts[1], "second") {
		t.Fatalf("expected page order preserved, got %q", text)
	}
}

func TestFromBytesUnparseable(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte("not a pdf at all"), "junk.pdf")
	if err == nil {
		t.Fatal("expected error for non-PDF input")
	}

	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected ExtractionError, got %T: %v", err, err)
	}
	if extractErr.FileName != "junk.pdf" {
		t.Fatalf("expected file name on error, got %q", extractErr.FileName)
	}
}

func TestFromStoreReadFailure(t *testing.T) {
	store := local.New(t.TempDir())

	_, err := FromStore(context.Background(), store, "missing/key.pdf", "resume.pdf")
	if err == nil {
		t.Fatal("expected error for missing object")
	}

	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected ReadError, got %T: %v", err, err)
	}
	if readErr.FileName != "resume.pdf" {
		t.Fatalf("expected file name on error, got %q", readErr.FileName)
	}
}

func TestFromStoreRoundTrip(t *testing.T) {
	store := local.New(t.TempDir())
	data := buildPDF(t, "stored resume text")

	key, _, _, err := store.Save(context.Background(), "batch-1", "resume.pdf", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	text, err := FromStore(context.Background(), store, key, "resume.pdf")
	if err != nil {
		t.Fatalf("extract from store: %v", err)
	}
	if !strings.Contains(text, "stored") {
		t.Fatalf("unexpected text: %q", text)
	}
}
