package service

import (
	"context"

	"github.com/alexivanou/tripsynth-api/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	GenerateItinerary(ctx context.Context, req model.TripRequest, ownerID int64) (*GenerationResult, error)
	ListTrips(ctx context.Context, ownerID int64, isSaved *bool, page model.Page) ([]model.Trip, error)
	GetTrip(ctx context.Context, tripID, ownerID int64) (*model.Trip, error)
	PromoteTrip(ctx context.Context, tripID, ownerID int64, displayName string) (*model.Trip, error)
	DeleteTrip(ctx context.Context, tripID, ownerID int64) error
	DeleteOwner(ctx context.Context, ownerID int64) error
	ExportCalendar(ctx context.Context, tripID, ownerID int64) (string, error)
}
