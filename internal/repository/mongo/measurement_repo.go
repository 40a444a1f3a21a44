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

const measurementCollectionName = "body_measurements"

// mongoMeasurementRepository implements repository.MeasurementRepository
type mongoMeasurementRepository struct {
	collection *mongo.Collection
}

// NewMongoMeasurementRepository creates a new body measurement repository.
func NewMongoMeasurementRepository(db *mongo.Database) repository.MeasurementRepository {
	return &mongoMeasurementRepository{
		collection: db.Collection(measurementCollectionName),
	}
}

// Create inserts a new measurement.
func (r *mongoMeasurementRepository) Create(ctx context.Context, measurement *domain.BodyMeasurement) (primitive.ObjectID, error) {
	if measurement.UserID == primitive.NilObjectID || measurement.Type == "" {
		return primitive.NilObjectID, errors.New("measurement requires userId and type")
	}
	measurement.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	measurement.CreatedAt = now
	if measurement.MeasuredAt.IsZero() {
		measurement.MeasuredAt = now
	}

	result, err := r.collection.InsertOne(ctx, measurement)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted measurement ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single measurement by its ID.
func (r *mongoMeasurementRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.BodyMeasurement, error) {
	var measurement domain.BodyMeasurement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&measurement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &measurement, nil
}

// GetByUserSince retrieves measurements taken strictly after the given
// instant, most recent first.
func (r *mongoMeasurementRepository) GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.BodyMeasurement, error) {
	filter := bson.M{
		"userId":     userID,
		"measuredAt": bson.M{"$gt": since},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "measuredAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	return decodeLenient[domain.BodyMeasurement](ctx, cursor, measurementCollectionName)
}

// SetPhotoKey links an uploaded progress photo to a measurement owned by
// the given user.
func (r *mongoMeasurementRepository) SetPhotoKey(ctx context.Context, id, userID primitive.ObjectID, photoKey string) error {
	filter := bson.M{"_id": id, "userId": userID}
	updateDoc := bson.M{"$set": bson.M{"photoKey": photoKey}}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMeasurementIndexes creates necessary indexes. Call during startup.
func EnsureMeasurementIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "measuredAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index(),
		},
	})
}
