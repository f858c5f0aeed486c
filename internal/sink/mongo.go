package sink

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoWriter persists match rows as documents in a MongoDB collection,
// one document per row, indexed by match_id for later lookups.
type MongoWriter struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoWriter opens (or reuses) db.Collection(collectionName), ensures
// a non-unique index on match_id, and returns a ready MongoWriter.
func NewMongoWriter(db *mongo.Database, collectionName string, logger *zap.Logger) (*MongoWriter, error) {
	collection := db.Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{bson.E{Key: "match_id", Value: 1}},
	})
	if err != nil {
		logger.Warn("sink: could not create match_id index", zap.Error(err))
	}

	return &MongoWriter{collection: collection, logger: logger}, nil
}

// Write inserts each row as its own document.
func (mw *MongoWriter) Write(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	docs := make([]interface{}, len(rows))
	for i, r := range rows {
		docs[i] = bson.M{
			"match_id":         r.MatchID,
			"position":         r.Position,
			"record_id":        r.RecordID,
			"match_type":       r.MatchType,
			"confidence_score": r.Confidence,
			"given_name":       r.GivenName,
			"surname":          r.Surname,
			"secondary_name":   r.SecondaryName,
			"street":           r.Street,
			"house_number":     r.HouseNumber,
			"postal_code":      r.PostalCode,
			"city":             r.City,
		}
	}
	opts := options.InsertMany().SetOrdered(false)
	if _, err := mw.collection.InsertMany(ctx, docs, opts); err != nil {
		return fmt.Errorf("sink: mongo insert: %w", err)
	}
	return nil
}

// Close is a no-op: the *mongo.Database's client connection is owned and
// closed by the caller, not by the writer.
func (mw *MongoWriter) Close() error {
	return nil
}
