package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"pocketcoach/backend/internal/domain"
	"pocketcoach/backend/internal/platform/logger"
	"pocketcoach/backend/internal/repository"
	"pocketcoach/backend/internal/storage"
)

const photoUploadedMessage = "Photo uploaded successfully"

// PhotoUpload is a fully buffered progress photo.
type PhotoUpload struct {
	UserID      string
	Date        string // YYYY-MM-DD; empty means today (UTC)
	FileName    string
	ContentType string
	Data        []byte
}

// PhotoReceipt is returned after an upload.
type PhotoReceipt struct {
	domain.ProgressPhoto
	Message string `json:"message"`
}

type ProgressService interface {
	// LogWeight and LogMeasurement echo the entry, persisting it first when a repository is set.
	LogWeight(ctx context.Context, entry domain.WeightEntry) (domain.WeightEntry, error)
	WeightHistory(ctx context.Context, userID string) ([]domain.WeightEntry, error)

	LogMeasurement(ctx context.Context, entry domain.MeasurementEntry) (domain.MeasurementEntry, error)
	MeasurementHistory(ctx context.Context, userID string) ([]domain.MeasurementEntry, error)

	UploadPhoto(ctx context.Context, upload PhotoUpload) (*PhotoReceipt, error)
	ListPhotos(ctx context.Context, userID string) ([]domain.ProgressPhoto, error)
}

type progressService struct {
	progressRepo  repository.ProgressRepository // nil in mock mode
	photoStorage  storage.PhotoStorage          // nil when photos are not kept
	presignExpiry time.Duration
	log           *logger.Logger
	now           func() time.Time
}

// NewProgressService creates a progress service. Either dependency may be nil.
func NewProgressService(progressRepo repository.ProgressRepository, photoStorage storage.PhotoStorage, presignExpiry time.Duration, log *logger.Logger) ProgressService {
	return &progressService{
		progressRepo:  progressRepo,
		photoStorage:  photoStorage,
		presignExpiry: presignExpiry,
		log:           log,
		now:           time.Now,
	}
}

func (s *progressService) LogWeight(ctx context.Context, entry domain.WeightEntry) (domain.WeightEntry, error) {
	if s.progressRepo != nil {
		if err := s.progressRepo.SaveWeight(ctx, &entry); err != nil {
			return domain.WeightEntry{}, fmt.Errorf("save weight entry: %w", err)
		}
	}
	return entry, nil
}

func (s *progressService) WeightHistory(ctx context.Context, userID string) ([]domain.WeightEntry, error) {
	if s.progressRepo == nil {
		return mockWeightHistory(userID), nil
	}
	return s.progressRepo.ListWeights(ctx, userID)
}

func (s *progressService) LogMeasurement(ctx context.Context, entry domain.MeasurementEntry) (domain.MeasurementEntry, error) {
	if s.progressRepo != nil {
		if err := s.progressRepo.SaveMeasurement(ctx, &entry); err != nil {
			return domain.MeasurementEntry{}, fmt.Errorf("save measurement entry: %w", err)
		}
	}
	return entry, nil
}

func (s *progressService) MeasurementHistory(ctx context.Context, userID string) ([]domain.MeasurementEntry, error) {
	if s.progressRepo == nil {
		return mockMeasurementHistory(userID), nil
	}
	return s.progressRepo.ListMeasurements(ctx, userID)
}

func (s *progressService) UploadPhoto(ctx context.Context, upload PhotoUpload) (*PhotoReceipt, error) {
	date := upload.Date
	if date == "" {
		date = s.now().UTC().Format(domain.DateLayout)
	}
	photo := domain.ProgressPhoto{
		UserID:      upload.UserID,
		Date:        date,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Size:        int64(len(upload.Data)),
	}

	if s.photoStorage != nil {
		key := photoObjectKey(upload.UserID, upload.FileName)
		if err := s.photoStorage.PutObject(ctx, key, upload.ContentType, upload.Data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPhotoStoreFailed, err)
		}
		photo.ObjectKey = key
		photo.URL = s.presign(ctx, key)
	}

	if s.progressRepo != nil {
		if err := s.progressRepo.SavePhoto(ctx, &photo); err != nil {
			if photo.ObjectKey != "" {
				// Don't leave an orphaned object behind.
				_ = s.photoStorage.DeleteObject(context.WithoutCancel(ctx), photo.ObjectKey)
			}
			return nil, fmt.Errorf("%w: %v", ErrPhotoRecordFailed, err)
		}
	}

	s.log.Info("Progress photo uploaded", "user_id", photo.UserID, "size", photo.Size, "stored", photo.ObjectKey != "")
	return &PhotoReceipt{ProgressPhoto: photo, Message: photoUploadedMessage}, nil
}

func (s *progressService) ListPhotos(ctx context.Context, userID string) ([]domain.ProgressPhoto, error) {
	if s.progressRepo == nil {
		return mockPhotos(userID), nil
	}
	photos, err := s.progressRepo.ListPhotos(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.photoStorage != nil {
		for i := range photos {
			if photos[i].ObjectKey != "" {
				photos[i].URL = s.presign(ctx, photos[i].ObjectKey)
			}
		}
	}
	return photos, nil
}

// presign returns a download URL, or "" when presigning fails.
func (s *progressService) presign(ctx context.Context, key string) string {
	signed, err := s.photoStorage.GeneratePresignedDownloadURL(ctx, key, s.presignExpiry)
	if err != nil {
		s.log.Warn("Presigning photo URL failed", "key", key, "error", err)
		return ""
	}
	return signed
}

func photoObjectKey(userID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	dir := url.PathEscape(userID)
	if strings.Trim(dir, ".") == "" {
		dir = "_"
	}
	return path.Join("progress", dir, uuid.NewString()+ext)
}
