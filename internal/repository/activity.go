package repository

import (
	"context"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository stores the audit trail of session mutations.
type ActivityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *MongoDB) *ActivityRepository {
	return &ActivityRepository{collection: db.Activity}
}

func stamp(entry *model.ActivityEntry) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
}

// Create inserts one activity entry.
func (r *ActivityRepository) Create(ctx context.Context, entry *model.ActivityEntry) error {
	stamp(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts activity entries in bulk.
func (r *ActivityRepository) CreateMany(ctx context.Context, entries []*model.ActivityEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		stamp(entry)
		docs[i] = entry
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func activityFilter(opts model.ActivityQueryOptions) bson.M {
	filter := bson.M{}
	if opts.DeviceID != "" {
		filter["device_id"] = opts.DeviceID
	}
	if opts.OperatorID != "" {
		filter["operator_id"] = opts.OperatorID
	}
	if opts.Action != "" {
		filter["action"] = opts.Action
	}
	if opts.StartTime != nil || opts.EndTime != nil {
		timeFilter := bson.M{}
		if opts.StartTime != nil {
			timeFilter["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			timeFilter["$lte"] = *opts.EndTime
		}
		filter["timestamp"] = timeFilter
	}
	return filter
}

// Query returns matching entries, newest first.
func (r *ActivityRepository) Query(ctx context.Context, opts model.ActivityQueryOptions) ([]*model.ActivityEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, activityFilter(opts), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var entries []*model.ActivityEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of matching entries.
func (r *ActivityRepository) Count(ctx context.Context, opts model.ActivityQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, activityFilter(opts))
}
