package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pocketcoach/backend/internal/domain"
	"pocketcoach/backend/internal/repository"
)

const profileCollectionName = "profiles"

// mongoProfileRepository implements repository.ProfileRepository using MongoDB.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a profile repository backed by the given database.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Upsert replaces the stored profile for profile.UserID, inserting it if absent.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if profile.UserID == "" {
		return errors.New("profile user_id is required")
	}
	filter := bson.M{"userId": profile.UserID}
	_, err := r.collection.ReplaceOne(ctx, filter, profile, options.Replace().SetUpsert(true))
	return err
}

// GetByUserID retrieves a profile by its user_id.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	profile.ApplyDefaults()
	return &profile, nil
}

// EnsureProfileIndexes makes user_id unique across profiles.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
