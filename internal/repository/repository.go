package repository

import (
	"context"

	"pocketcoach/backend/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProfileRepository stores one profile per user_id.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// ProgressRepository stores progress logs. List methods return entries ordered by date, oldest first,
// and an empty slice (not ErrNotFound) when the user has no entries.
type ProgressRepository interface {
	SaveWeight(ctx context.Context, entry *domain.WeightEntry) error
	ListWeights(ctx context.Context, userID string) ([]domain.WeightEntry, error)

	SaveMeasurement(ctx context.Context, entry *domain.MeasurementEntry) error
	ListMeasurements(ctx context.Context, userID string) ([]domain.MeasurementEntry, error)

	SavePhoto(ctx context.Context, photo *domain.ProgressPhoto) error
	ListPhotos(ctx context.Context, userID string) ([]domain.ProgressPhoto, error)
}
