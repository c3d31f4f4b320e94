package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"resume-screener/internal/shared/storage/object"
)

// ExtractionError reports a document that could not be parsed. It is per-file
// and must not abort sibling extractions in the same batch.
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract text from %s: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ReadError reports a document whose bytes could not be read.
type ReadError struct {
	FileName string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.FileName, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// FromStore reads a stored object and extracts its text.
func FromStore(ctx context.Context, store object.ObjectStore, storageKey string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return "", &ReadError{FileName: fileName, Err: err}
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", &ReadError{FileName: fileName, Err: err}
	}

	return FromBytes(ctx, raw, fileName)
}

// FromBytes extracts plain text from an in-memory PDF. Pages are concatenated
// in order separated by a newline; text items within a page are joined by a
// single space. Word-boundary fidelity follows the extraction library.
func FromBytes(ctx context.Context, data []byte, fileName string) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// The parser panics on some malformed inputs; fold those into ExtractionError.
	defer func() {
		if rec := recover(); rec != nil {
			err = &ExtractionError{FileName: fileName, Err: fmt.Errorf("%v", rec)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{FileName: fileName, Err: err}
	}

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, pageText(page))
	}
	return strings.Join(pages, "\n"), nil
}

func pageText(page pdf.Page) string {
	content := page.Content()
	items := make([]string, 0, len(content.Text))
	for _, txt := range content.Text {
		items = append(items, txt.S)
	}
	return strings.Join(items, " ")
}
