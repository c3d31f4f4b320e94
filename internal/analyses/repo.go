package analyses

import (
	"context"
	"sync"
)

// RunRepo holds the latest analysis run.
type RunRepo interface {
	Replace(ctx context.Context, run Run) error
	Latest(ctx context.Context) (Run, error)
}

// MemoryRepo is an in-memory implementation of RunRepo.
type MemoryRepo struct {
	mu     sync.RWMutex
	latest *Run
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Replace swaps the latest run for a new one.
func (r *MemoryRepo) Replace(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest = &run
	return nil
}

// Latest returns the most recent run.
func (r *MemoryRepo) Latest(ctx context.Context) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return Run{}, ErrNoRun
	}
	return *r.latest, nil
}
