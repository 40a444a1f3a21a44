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

const strengthCollectionName = "strength_records"

// mongoStrengthRepository implements repository.StrengthRepository
type mongoStrengthRepository struct {
	collection *mongo.Collection
}

// NewMongoStrengthRepository creates a new strength record repository.
func NewMongoStrengthRepository(db *mongo.Database) repository.StrengthRepository {
	return &mongoStrengthRepository{
		collection: db.Collection(strengthCollectionName),
	}
}

// Upsert writes the one-rep-max record for its (userId, exerciseId) key,
// replacing the previous estimate for that exercise.
func (r *mongoStrengthRepository) Upsert(ctx context.Context, record *domain.StrengthRecord) error {
	if record.UserID == primitive.NilObjectID || record.ExerciseID == "" {
		return errors.New("strength record requires userId and exerciseId")
	}
	record.UpdatedAt = time.Now().UTC()
	if record.ID == primitive.NilObjectID {
		record.ID = primitive.NewObjectID()
	}

	filter := bson.M{"userId": record.UserID, "exerciseId": record.ExerciseID}
	updateDoc := bson.M{
		"$set": bson.M{
			"exerciseName": record.ExerciseName,
			"oneRepMax":    record.OneRepMax,
			"updatedAt":    record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        record.ID,
			"userId":     record.UserID,
			"exerciseId": record.ExerciseID,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, updateDoc, options.Update().SetUpsert(true))
	return err
}

// GetByUser retrieves all strength records for a user, most recently
// updated first.
func (r *mongoStrengthRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeLenient[domain.StrengthRecord](ctx, cursor, strengthCollectionName)
}

// EnsureStrengthIndexes creates necessary indexes. Call during startup.
func EnsureStrengthIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseId", Value: 1}},
			Options: unique(),
		},
	})
}
