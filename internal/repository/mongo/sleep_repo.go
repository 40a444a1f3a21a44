package mongo

import (
	"alcyxob/coach-api/internal/domain"
	"alcyxob/coach-api/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sleepCollectionName = "sleep_records"

// mongoSleepRepository implements repository.SleepRepository
type mongoSleepRepository struct {
	collection *mongo.Collection
}

// NewMongoSleepRepository creates a new sleep record repository.
func NewMongoSleepRepository(db *mongo.Database) repository.SleepRepository {
	return &mongoSleepRepository{
		collection: db.Collection(sleepCollectionName),
	}
}

// Upsert writes the record for its (userId, date) key, replacing any
// existing record for that night. Last write wins.
func (r *mongoSleepRepository) Upsert(ctx context.Context, record *domain.SleepRecord) error {
	if record.UserID == primitive.NilObjectID || record.Date == "" {
		return errors.New("sleep record requires userId and date")
	}
	now := time.Now().UTC()
	record.UpdatedAt = now
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.ID == primitive.NilObjectID {
		record.ID = primitive.NewObjectID()
	}

	filter := bson.M{"userId": record.UserID, "date": record.Date}
	updateDoc := bson.M{
		"$set": bson.M{
			"hours":     record.Hours,
			"minutes":   record.Minutes,
			"quality":   record.Quality,
			"bedTime":   record.BedTime,
			"wakeTime":  record.WakeTime,
			"notes":     record.Notes,
			"updatedAt": record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       record.ID,
			"userId":    record.UserID,
			"date":      record.Date,
			"createdAt": record.CreatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, updateDoc, options.Update().SetUpsert(true))
	return err
}

// GetByUserSince retrieves records dated on or after sinceDate, oldest
// first. Dates are "2006-01-02" strings, so lexicographic order is
// chronological order.
func (r *mongoSleepRepository) GetByUserSince(ctx context.Context, userID primitive.ObjectID, sinceDate string) ([]domain.SleepRecord, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": sinceDate},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeLenient[domain.SleepRecord](ctx, cursor, sleepCollectionName)
}

// EnsureSleepIndexes creates necessary indexes. Call during startup.
func EnsureSleepIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// One record per user per night; also serves the window query.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: unique(),
		},
	})
}
