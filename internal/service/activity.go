package service

import (
	"context"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/guttosm/count-service/internal/repository"
)

// ActivityService reads and writes the audit trail of counting sessions.
type ActivityService interface {
	// Create stores a single entry.
	Create(ctx context.Context, entry *model.ActivityEntry) error
	// CreateMany stores entries in bulk.
	CreateMany(ctx context.Context, entries []*model.ActivityEntry) error
	// Query returns matching entries, newest first.
	Query(ctx context.Context, opts model.ActivityQueryOptions) ([]*model.ActivityEntry, error)
	// Count returns the number of matching entries.
	Count(ctx context.Context, opts model.ActivityQueryOptions) (int64, error)
}

// ActivityServiceImpl implements ActivityService.
type ActivityServiceImpl struct {
	repo repository.ActivityRepositoryInterface
}

// defaultActivityLimit caps unbounded queries.
const defaultActivityLimit = 100

// NewActivityService creates a new activity service.
func NewActivityService(repo repository.ActivityRepositoryInterface) ActivityService {
	return &ActivityServiceImpl{repo: repo}
}

// Create stores a single entry.
func (s *ActivityServiceImpl) Create(ctx context.Context, entry *model.ActivityEntry) error {
	return s.repo.Create(ctx, entry)
}

// CreateMany stores entries in bulk.
func (s *ActivityServiceImpl) CreateMany(ctx context.Context, entries []*model.ActivityEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, entries)
}

// Query returns matching entries, newest first.
func (s *ActivityServiceImpl) Query(ctx context.Context, opts model.ActivityQueryOptions) ([]*model.ActivityEntry, error) {
	if opts.Limit <= 0 || opts.Limit > defaultActivityLimit {
		opts.Limit = defaultActivityLimit
	}
	return s.repo.Query(ctx, opts)
}

// Count returns the number of matching entries.
func (s *ActivityServiceImpl) Count(ctx context.Context, opts model.ActivityQueryOptions) (int64, error) {
	return s.repo.Count(ctx, opts)
}
