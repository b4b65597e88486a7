// Package ai wraps the external generative-AI providers behind one small interface.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pocketcoach/backend/internal/config"
	"pocketcoach/backend/internal/platform/logger"
)

var (
	// ErrNotConfigured is returned by every call when no API key was supplied at startup.
	ErrNotConfigured = errors.New("ai provider is not configured: set ai.api_key")
	// ErrEmptyResponse is returned when the provider answers without any text.
	ErrEmptyResponse = errors.New("ai provider returned an empty response")
)

// Request is a single chat/vision completion.
type Request struct {
	System      string
	Prompt      string
	Images      []Image
	Model       string
	MaxTokens   int
	Temperature *float64 // nil leaves the provider default
}

// Provider turns a prompt (and optional images) into text.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// NewProvider builds the provider selected by cfg.Provider. A missing API key is not fatal:
// the service starts and every call fails with ErrNotConfigured.
func NewProvider(cfg config.AIConfig, log *logger.Logger) (Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		log.Warn("AI provider API key missing; AI routes will report errors", "provider", cfg.Provider)
		return unconfigured{name: cfg.Provider}, nil
	}
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIProvider(cfg)
	case "gemini":
		return NewGeminiProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

type unconfigured struct {
	name string
}

func (u unconfigured) Name() string { return u.name }

func (u unconfigured) Generate(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}
