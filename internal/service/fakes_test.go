package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pocketcoach/backend/internal/ai"
	"pocketcoach/backend/internal/domain"
	"pocketcoach/backend/internal/repository"
)

type fakeProvider struct {
	text     string
	err      error
	requests []ai.Request
	deadline bool
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Generate(ctx context.Context, req ai.Request) (string, error) {
	p.requests = append(p.requests, req)
	_, p.deadline = ctx.Deadline()
	return p.text, p.err
}

type memoryProfiles struct {
	profiles map[string]domain.UserProfile
	err      error
}

func (m *memoryProfiles) Upsert(_ context.Context, profile *domain.UserProfile) error {
	if m.err != nil {
		return m.err
	}
	if m.profiles == nil {
		m.profiles = map[string]domain.UserProfile{}
	}
	m.profiles[profile.UserID] = *profile
	return nil
}

func (m *memoryProfiles) GetByUserID(_ context.Context, userID string) (*domain.UserProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

type memoryProgress struct {
	mu           sync.Mutex
	weights      []domain.WeightEntry
	measurements []domain.MeasurementEntry
	photos       []domain.ProgressPhoto
	photoErr     error
}

func (m *memoryProgress) SaveWeight(_ context.Context, e *domain.WeightEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weights = append(m.weights, *e)
	return nil
}

func (m *memoryProgress) ListWeights(_ context.Context, userID string) ([]domain.WeightEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.WeightEntry{}
	for _, e := range m.weights {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memoryProgress) SaveMeasurement(_ context.Context, e *domain.MeasurementEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.measurements = append(m.measurements, *e)
	return nil
}

func (m *memoryProgress) ListMeasurements(_ context.Context, userID string) ([]domain.MeasurementEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.MeasurementEntry{}
	for _, e := range m.measurements {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryProgress) SavePhoto(_ context.Context, p *domain.ProgressPhoto) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.photoErr != nil {
		return m.photoErr
	}
	stored := *p
	stored.URL = ""
	m.photos = append(m.photos, stored)
	return nil
}

func (m *memoryProgress) ListPhotos(_ context.Context, userID string) ([]domain.ProgressPhoto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.ProgressPhoto{}
	for _, p := range m.photos {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memoryStorage struct {
	objects map[string][]byte
	putErr  error
	deleted []string
}

func (m *memoryStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = append([]byte(nil), body...)
	return nil
}

func (m *memoryStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, ok := m.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://storage.test/" + key + "?signed=1", nil
}

func (m *memoryStorage) DeleteObject(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.objects, key)
	return nil
}
