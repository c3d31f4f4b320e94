package documents

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/extract"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
)

// IncomingFile is one accepted upload, already past the surface checks.
type IncomingFile struct {
	Name   string
	Reader io.Reader
}

// Service contains business logic for upload batches.
type Service struct {
	Store object.ObjectStore
	Repo  BatchRepo
}

// CreateBatch stores each file, extracts its text, and replaces the current
// batch. A file that cannot be stored or parsed is marked failed without
// aborting its siblings.
func (s *Service) CreateBatch(ctx context.Context, files []IncomingFile) (Batch, error) {
	if len(files) == 0 {
		return Batch{}, ErrInvalidInput
	}

	batch := Batch{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	for _, file := range files {
		doc := UploadedDocument{
			ID:        uuid.NewString(),
			Name:      file.Name,
			CreatedAt: time.Now().UTC(),
		}

		storageKey, size, _, err := s.Store.Save(ctx, batch.ID, file.Name, file.Reader)
		if err != nil {
			doc.Status = StatusFailed
			doc.Error = "failed to store file"
			telemetry.Error("documents.store.failed", map[string]any{
				"batch_id": batch.ID,
				"file":     file.Name,
				"err":      err.Error(),
			})
			batch.Documents = append(batch.Documents, doc)
			continue
		}
		doc.StorageKey = storageKey
		doc.SizeBytes = size

		text, err := extract.FromStore(ctx, s.Store, storageKey, file.Name)
		if err != nil {
			doc.Status = StatusFailed
			doc.Error = "failed to extract text"
			telemetry.Error("documents.extract.failed", map[string]any{
				"batch_id": batch.ID,
				"file":     file.Name,
				"err":      err.Error(),
			})
			batch.Documents = append(batch.Documents, doc)
			continue
		}

		doc.Text = text
		doc.Status = StatusExtracted
		batch.Documents = append(batch.Documents, doc)
	}

	if err := s.Repo.Replace(ctx, batch); err != nil {
		return Batch{}, err
	}
	return batch, nil
}

// Current returns the current batch.
func (s *Service) Current(ctx context.Context) (Batch, error) {
	return s.Repo.Current(ctx)
}
