package repository

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kovaldeepai/server/internal/models"
)

// DiveMirror is a secondary, read-only source of dive logs (the Wix Data
// collection backing the member site). May be nil when not configured.
type DiveMirror interface {
	QueryDiveLogs(ctx context.Context, userID string, limit int) ([]models.DiveLog, error)
}

// DiveMongo stores dive logs and serves the bounded recent slice the chat and
// analysis flows inject as context.
type DiveMongo struct {
	col    *mongo.Collection
	mirror DiveMirror
}

// NewDiveRepository wires the "dive_logs" collection. mirror may be nil.
func NewDiveRepository(db *mongo.Database, mirror DiveMirror) *DiveMongo {
	return &DiveMongo{
		col:    db.Collection("dive_logs"),
		mirror: mirror,
	}
}

// Recent returns up to limit dive logs for the user, newest first. When the
// primary collection has nothing and a mirror is configured, the mirror is
// consulted; mirror failures are logged and degrade to the empty slice.
func (r *DiveMongo) Recent(ctx context.Context, userID string, limit int) ([]models.DiveLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var dives []models.DiveLog
	if err := cur.All(ctx, &dives); err != nil {
		return nil, err
	}

	if len(dives) == 0 && r.mirror != nil {
		mirrored, err := r.mirror.QueryDiveLogs(ctx, userID, limit)
		if err != nil {
			log.Printf("[Dive Repository] mirror lookup failed for user %s: %v", userID, err)
			return dives, nil
		}
		return mirrored, nil
	}
	return dives, nil
}

// Insert records a new dive.
func (r *DiveMongo) Insert(ctx context.Context, dive models.DiveLog) (models.DiveLog, error) {
	res, err := r.col.InsertOne(ctx, dive)
	if err != nil {
		return models.DiveLog{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		dive.ID = oid
	}
	return dive, nil
}
