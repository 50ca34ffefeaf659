package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionDocument is the MongoDB shape of a device session.
type SessionDocument struct {
	DeviceID      string                `bson:"device_id"`
	OperatorID    string                `bson:"operator_id"`
	WarehouseCode string                `bson:"warehouse_code"`
	LocationCode  string                `bson:"location_code"`
	Tally         []model.InventoryItem `bson:"tally"`
	UpdatedAt     time.Time             `bson:"updated_at"`
}

// MongoSessionStore stores sessions in the sessions collection, one document per device.
type MongoSessionStore struct {
	collection *mongo.Collection
}

// NewMongoSessionStore creates a session store backed by MongoDB.
func NewMongoSessionStore(db *MongoDB) *MongoSessionStore {
	return &MongoSessionStore{collection: db.Sessions}
}

// Load returns the saved session of a device.
func (s *MongoSessionStore) Load(ctx context.Context, deviceID string) (*model.SessionState, error) {
	var doc SessionDocument
	err := s.collection.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", deviceID, err)
	}

	state := &model.SessionState{
		OperatorID:    doc.OperatorID,
		WarehouseCode: doc.WarehouseCode,
		LocationCode:  doc.LocationCode,
		Tally:         model.TallyList(doc.Tally).Clone(),
		UpdatedAt:     doc.UpdatedAt,
	}
	return state, nil
}

// Save replaces the session document of a device, creating it when missing.
func (s *MongoSessionStore) Save(ctx context.Context, deviceID string, state model.SessionState) error {
	doc := SessionDocument{
		DeviceID:      deviceID,
		OperatorID:    state.OperatorID,
		WarehouseCode: state.WarehouseCode,
		LocationCode:  state.LocationCode,
		Tally:         state.Tally.Clone(),
		UpdatedAt:     state.UpdatedAt,
	}

	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"device_id": deviceID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", deviceID, err)
	}
	return nil
}
