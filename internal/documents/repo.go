package documents

import (
	"context"
	"errors"
	"sync"
)

// ErrNoBatch indicates no upload batch exists yet.
var ErrNoBatch = errors.New("no batch uploaded")

// ErrInvalidInput indicates an unusable upload request.
var ErrInvalidInput = errors.New("invalid input")

// BatchRepo holds the single current batch.
type BatchRepo interface {
	Replace(ctx context.Context, batch Batch) error
	Current(ctx context.Context) (Batch, error)
}

// MemoryRepo is an in-memory implementation of BatchRepo.
type MemoryRepo struct {
	mu      sync.RWMutex
	current *Batch
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Replace swaps the current batch for a new one.
func (r *MemoryRepo) Replace(ctx context.Context, batch Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = &batch
	return nil
}

// Current returns the current batch.
func (r *MemoryRepo) Current(ctx context.Context) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return Batch{}, ErrNoBatch
	}
	return *r.current, nil
}
