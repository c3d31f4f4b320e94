package documents

import "time"

const (
	StatusExtracted = "extracted"
	StatusFailed    = "failed"
	StatusRejected  = "rejected"
)

// UploadedDocument is one resume accepted into a batch. Text is the extracted
// plain-text content; it may be empty if extraction yielded no text.
type UploadedDocument struct {
	ID         string
	Name       string
	Text       string
	StorageKey string
	SizeBytes  int64
	Status     string
	Error      string
	CreatedAt  time.Time
}

// Batch is the set of documents from one upload, replaced wholesale by the
// next upload.
type Batch struct {
	ID        string
	Documents []UploadedDocument
	CreatedAt time.Time
}

// Extracted returns only the documents available for analysis.
func (b Batch) Extracted() []UploadedDocument {
	out := make([]UploadedDocument, 0, len(b.Documents))
	for _, doc := range b.Documents {
		if doc.Status == StatusExtracted {
			out = append(out, doc)
		}
	}
	return out
}
