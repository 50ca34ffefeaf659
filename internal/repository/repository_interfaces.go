package repository

import (
	"context"

	"github.com/guttosm/count-service/internal/domain/model"
)

// SessionStore persists one SessionState per device.
//
// Load returns (nil, nil) when nothing was saved for the device yet.
// After a successful Save, Load returns exactly what was saved.
type SessionStore interface {
	Load(ctx context.Context, deviceID string) (*model.SessionState, error)
	Save(ctx context.Context, deviceID string, state model.SessionState) error
}

// ActivityRepositoryInterface defines the interface for activity repository operations.
type ActivityRepositoryInterface interface {
	Create(ctx context.Context, entry *model.ActivityEntry) error
	CreateMany(ctx context.Context, entries []*model.ActivityEntry) error
	Query(ctx context.Context, opts model.ActivityQueryOptions) ([]*model.ActivityEntry, error)
	Count(ctx context.Context, opts model.ActivityQueryOptions) (int64, error)
}
