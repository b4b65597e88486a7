package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pocketcoach/backend/internal/domain"
	"pocketcoach/backend/internal/repository"
)

const (
	weightCollectionName      = "weight_entries"
	measurementCollectionName = "measurement_entries"
	photoCollectionName       = "progress_photos"
)

// mongoProgressRepository implements repository.ProgressRepository with one collection per log kind.
type mongoProgressRepository struct {
	weights      *mongo.Collection
	measurements *mongo.Collection
	photos       *mongo.Collection
}

// NewMongoProgressRepository creates a progress repository backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		weights:      db.Collection(weightCollectionName),
		measurements: db.Collection(measurementCollectionName),
		photos:       db.Collection(photoCollectionName),
	}
}

var errUserIDRequired = errors.New("progress entry requires user_id")

func (r *mongoProgressRepository) SaveWeight(ctx context.Context, entry *domain.WeightEntry) error {
	if entry.UserID == "" {
		return errUserIDRequired
	}
	_, err := r.weights.InsertOne(ctx, entry)
	return err
}

func (r *mongoProgressRepository) ListWeights(ctx context.Context, userID string) ([]domain.WeightEntry, error) {
	entries := []domain.WeightEntry{}
	if err := findByUser(ctx, r.weights, userID, "date", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoProgressRepository) SaveMeasurement(ctx context.Context, entry *domain.MeasurementEntry) error {
	if entry.UserID == "" {
		return errUserIDRequired
	}
	_, err := r.measurements.InsertOne(ctx, entry)
	return err
}

func (r *mongoProgressRepository) ListMeasurements(ctx context.Context, userID string) ([]domain.MeasurementEntry, error) {
	entries := []domain.MeasurementEntry{}
	if err := findByUser(ctx, r.measurements, userID, "date", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoProgressRepository) SavePhoto(ctx context.Context, photo *domain.ProgressPhoto) error {
	if photo.UserID == "" {
		return errUserIDRequired
	}
	photo.UploadedAt = time.Now().UTC()
	_, err := r.photos.InsertOne(ctx, photo)
	return err
}

func (r *mongoProgressRepository) ListPhotos(ctx context.Context, userID string) ([]domain.ProgressPhoto, error) {
	photos := []domain.ProgressPhoto{}
	if err := findByUser(ctx, r.photos, userID, "uploadedAt", &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// findByUser decodes every document of userID, ascending by sortKey, into out.
func findByUser(ctx context.Context, collection *mongo.Collection, userID, sortKey string, out interface{}) error {
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// EnsureProgressIndexes indexes every progress collection by user and sort key.
func EnsureProgressIndexes(ctx context.Context, db *mongo.Database) error {
	for name, sortKey := range map[string]string{
		weightCollectionName:      "date",
		measurementCollectionName: "date",
		photoCollectionName:       "uploadedAt",
	} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: sortKey, Value: 1}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
