package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexivanou/tripsynth-api/internal/model"
	"go.uber.org/zap"
)

// ListTrips returns the owner's trips, newest first
func (s *Service) ListTrips(ctx context.Context, ownerID int64, isSaved *bool, page model.Page) ([]model.Trip, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	trips, err := s.tripRepo.List(ctx, ownerID, isSaved, page.Normalize())
	if err != nil {
		s.metrics.PersistenceErrors.WithLabelValues("list").Inc()
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}

// GetTrip returns one trip of the owner
func (s *Service) GetTrip(ctx context.Context, tripID, ownerID int64) (*model.Trip, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	trip, err := s.tripRepo.Get(ctx, tripID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// PromoteTrip marks a trip as saved under a display name
func (s *Service) PromoteTrip(ctx context.Context, tripID, ownerID int64, displayName string) (*model.Trip, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	name := strings.TrimSpace(displayName)
	if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLen {
		return nil, ErrInvalidDisplayName
	}

	trip, err := s.tripRepo.Promote(ctx, tripID, ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to promote trip: %w", err)
	}
	s.metrics.TripsPromoted.Inc()
	s.logger.Info("Trip saved", zap.Int64("trip_id", tripID), zap.Int64("owner_id", ownerID))
	return trip, nil
}

// DeleteTrip removes a trip immediately
func (s *Service) DeleteTrip(ctx context.Context, tripID, ownerID int64) error {
	if ownerID <= 0 {
		return ErrInvalidOwner
	}
	if err := s.tripRepo.Delete(ctx, tripID, ownerID); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	s.metrics.TripsDeleted.Inc()
	return nil
}

// DeleteOwner removes the owner and, by cascade, every trip they own
func (s *Service) DeleteOwner(ctx context.Context, ownerID int64) error {
	if ownerID <= 0 {
		return ErrInvalidOwner
	}
	if err := s.ownerRepo.Delete(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to delete owner: %w", err)
	}
	s.logger.Info("Owner deleted", zap.Int64("owner_id", ownerID))
	return nil
}
