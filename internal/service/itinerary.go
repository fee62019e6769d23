package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexivanou/tripsynth-api/internal/fallback"
	"github.com/alexivanou/tripsynth-api/internal/generation"
	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/alexivanou/tripsynth-api/internal/prompt"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Stage is a step of the generation pipeline
type Stage string

const (
	StageReceived        Stage = "RECEIVED"
	StageEnriched        Stage = "ENRICHED"
	StagePrompted        Stage = "PROMPTED"
	StageGenerating      Stage = "GENERATING"
	StageValidated       Stage = "VALIDATED"
	StageInvalid         Stage = "INVALID"
	StageTransportFailed Stage = "TRANSPORT_FAILED"
	StageFallback        Stage = "FALLBACK"
	StagePersisting      Stage = "PERSISTING"
	StageDone            Stage = "DONE"
)

// Source tells which path produced an itinerary
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// FallbackReason explains why the fallback path was taken
type FallbackReason string

const (
	ReasonNotConfigured   FallbackReason = "not_configured"
	ReasonTransport       FallbackReason = "transport"
	ReasonStatus          FallbackReason = "status"
	ReasonEmpty           FallbackReason = "empty"
	ReasonTimeout         FallbackReason = "timeout"
	ReasonInvalidResponse FallbackReason = "invalid_response"
)

// GenerationResult is the outcome of one pipeline run
type GenerationResult struct {
	Itinerary      model.Itinerary
	TripID         int64
	Trip           *model.Trip
	Source         Source
	FallbackReason FallbackReason
	Stages         []Stage
}

// run tracks a single request through the pipeline
type run struct {
	log    *zap.Logger
	stages []Stage
}

func (r *run) enter(s Stage) {
	r.stages = append(r.stages, s)
	r.log.Debug("Pipeline stage", zap.String("stage", string(s)))
}

// GenerateItinerary turns traveler preferences into a persisted, unsaved trip.
// Generation problems never surface: the fallback synthesizer covers them.
// Only invalid input and store failures are returned as errors.
func (s *Service) GenerateItinerary(ctx context.Context, req model.TripRequest, ownerID int64) (*GenerationResult, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	req = normalizeRequest(req)
	if err := s.validator.Request(req); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "service.GenerateItinerary")
	defer span.End()

	r := &run{log: s.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.Int64("owner_id", ownerID),
		zap.String("destination", req.Destination),
		zap.Int("duration_days", req.DurationDays),
	)}
	r.enter(StageReceived)

	locale := s.enricher.Enrich(ctx, req.Destination)
	if locale.IsEmpty() {
		s.metrics.Enrichments.WithLabelValues("empty").Inc()
	} else {
		s.metrics.Enrichments.WithLabelValues("resolved").Inc()
		r.enter(StageEnriched)
	}

	p := prompt.Build(req, locale)
	r.enter(StagePrompted)

	result := &GenerationResult{Source: SourceModel}
	itinerary, reason := s.generate(ctx, r, req, p)
	if itinerary == nil {
		r.enter(StageFallback)
		synthesized := fallback.Synthesize(req)
		itinerary = &synthesized
		result.Source = SourceFallback
		result.FallbackReason = reason
		s.metrics.Fallbacks.WithLabelValues(string(reason)).Inc()
	}
	result.Itinerary = *itinerary
	s.metrics.Generations.WithLabelValues(string(result.Source)).Inc()
	span.SetAttributes(
		attribute.String("itinerary.source", string(result.Source)),
		attribute.String("itinerary.fallback_reason", string(result.FallbackReason)),
	)

	r.enter(StagePersisting)
	trip, err := s.persist(ctx, ownerID, req, locale, itinerary)
	if err != nil {
		s.metrics.PersistenceErrors.WithLabelValues("create").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		r.log.Error("Failed to persist trip", zap.Error(err))
		return nil, fmt.Errorf("failed to persist trip: %w", err)
	}
	r.enter(StageDone)

	result.Trip = trip
	result.TripID = trip.ID
	result.Stages = r.stages
	r.log.Info("Itinerary generated",
		zap.Int64("trip_id", trip.ID),
		zap.String("source", string(result.Source)),
		zap.String("fallback_reason", string(result.FallbackReason)))
	return result, nil
}

// generate runs the external path. A nil itinerary means the caller must fall back.
func (s *Service) generate(ctx context.Context, r *run, req model.TripRequest, p prompt.Prompt) (*model.Itinerary, FallbackReason) {
	if !s.generator.Configured() {
		s.notConfiguredOnce.Do(func() {
			s.logger.Warn("Generation API key is not configured, serving fallback itineraries")
		})
		return nil, ReasonNotConfigured
	}

	r.enter(StageGenerating)
	genCtx := ctx
	if s.generationTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.generationTimeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.generator.Generate(genCtx, p)
	s.metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		r.enter(StageTransportFailed)
		reason := reasonFor(err)
		r.log.Warn("Generation failed, using fallback", zap.String("reason", string(reason)), zap.Error(err))
		return nil, reason
	}

	itinerary, err := s.validator.Parse(raw, req)
	if err != nil {
		r.enter(StageInvalid)
		r.log.Warn("Generated itinerary rejected, using fallback", zap.Error(err))
		return nil, ReasonInvalidResponse
	}
	r.enter(StageValidated)
	return itinerary, ""
}

func reasonFor(err error) FallbackReason {
	switch generation.KindOf(err) {
	case generation.KindNotConfigured:
		return ReasonNotConfigured
	case generation.KindTimeout:
		return ReasonTimeout
	case generation.KindStatus:
		return ReasonStatus
	case generation.KindEmpty:
		return ReasonEmpty
	default:
		return ReasonTransport
	}
}

func (s *Service) persist(ctx context.Context, ownerID int64, req model.TripRequest, locale model.LocaleContext, it *model.Itinerary) (*model.Trip, error) {
	payload, err := json.Marshal(it)
	if err != nil {
		return nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}
	if err := s.ownerRepo.Ensure(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("failed to ensure owner: %w", err)
	}

	trip := &model.Trip{
		OwnerID:             ownerID,
		Destination:         req.Destination,
		CountryName:         optional(locale.CountryName),
		DurationDays:        req.DurationDays,
		TravelerGroup:       string(req.TravelerGroup),
		Interests:           model.StringList(req.Interests),
		BudgetTier:          optional(string(req.BudgetTier)),
		TransportPreference: optional(req.TransportPreference),
		PlanPayload:         payload,
	}
	return s.tripRepo.Create(ctx, trip)
}

// normalizeRequest trims free text and collapses duplicate interests
func normalizeRequest(req model.TripRequest) model.TripRequest {
	req.Destination = strings.TrimSpace(req.Destination)
	req.TransportPreference = strings.TrimSpace(req.TransportPreference)
	req.TravelerGroup = model.TravelerGroup(strings.ToLower(strings.TrimSpace(string(req.TravelerGroup))))
	req.BudgetTier = model.BudgetTier(strings.ToLower(strings.TrimSpace(string(req.BudgetTier))))
	req.StartDate = strings.TrimSpace(req.StartDate)
	req.Interests = lo.Uniq(lo.FilterMap(req.Interests, func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	}))
	return req
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
