package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexivanou/tripsynth-api/internal/metrics"
	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/alexivanou/tripsynth-api/internal/prompt"
	"github.com/alexivanou/tripsynth-api/internal/repository"
	"github.com/alexivanou/tripsynth-api/internal/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	// ErrInvalidRequest is returned for traveler preferences that fail validation
	ErrInvalidRequest = validation.ErrInvalidRequest
	// ErrInvalidDisplayName is returned when promoting a trip without a usable name
	ErrInvalidDisplayName = errors.New("display name must not be empty")
	// ErrInvalidOwner is returned for a missing or non-positive owner id
	ErrInvalidOwner = errors.New("invalid owner id")
	// ErrNotFound is returned when a trip does not exist or belongs to another owner
	ErrNotFound = repository.ErrNotFound
)

const maxDisplayNameLen = 100

// Generator produces raw itinerary text for a prompt
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, p prompt.Prompt) (string, error)
}

// Enricher resolves optional locale facts. It never fails.
type Enricher interface {
	Enrich(ctx context.Context, destination string) model.LocaleContext
}

// Service provides business logic for the API
type Service struct {
	tripRepo  repository.TripRepository
	ownerRepo repository.OwnerRepository
	generator Generator
	enricher  Enricher
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *zap.Logger
	tracer    trace.Tracer

	generationTimeout time.Duration
	notConfiguredOnce sync.Once
}

// NewService creates a new service instance
func NewService(
	tripRepo repository.TripRepository,
	ownerRepo repository.OwnerRepository,
	generator Generator,
	enricher Enricher,
	m *metrics.Metrics,
	logger *zap.Logger,
	generationTimeout time.Duration,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tripRepo:          tripRepo,
		ownerRepo:         ownerRepo,
		generator:         generator,
		enricher:          enricher,
		validator:         validation.New(),
		metrics:           m,
		logger:            logger,
		tracer:            otel.Tracer("tripsynth/service"),
		generationTimeout: generationTimeout,
	}
}
