package service

import (
	"context"

	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/alexivanou/tripsynth-api/internal/prompt"
	"github.com/stretchr/testify/mock"
)

// MockTripRepository implements repository.TripRepository interface
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Create(ctx context.Context, trip *model.Trip) (*model.Trip, error) {
	args := m.Called(ctx, trip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

func (m *MockTripRepository) Promote(ctx context.Context, tripID, ownerID int64, displayName string) (*model.Trip, error) {
	args := m.Called(ctx, tripID, ownerID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

func (m *MockTripRepository) List(ctx context.Context, ownerID int64, isSaved *bool, page model.Page) ([]model.Trip, error) {
	args := m.Called(ctx, ownerID, isSaved, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trip), args.Error(1)
}

func (m *MockTripRepository) Get(ctx context.Context, tripID, ownerID int64) (*model.Trip, error) {
	args := m.Called(ctx, tripID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

func (m *MockTripRepository) Delete(ctx context.Context, tripID, ownerID int64) error {
	args := m.Called(ctx, tripID, ownerID)
	return args.Error(0)
}

// MockOwnerRepository implements repository.OwnerRepository interface
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) Ensure(ctx context.Context, ownerID int64) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, ownerID int64) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

// MockGenerator implements Generator interface
type MockGenerator struct {
	mock.Mock
	configured bool
}

func (m *MockGenerator) Configured() bool {
	return m.configured
}

func (m *MockGenerator) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	args := m.Called(ctx, p)
	if fn, ok := args.Get(0).(func(context.Context) (string, error)); ok {
		return fn(ctx)
	}
	return args.String(0), args.Error(1)
}

// MockEnricher implements Enricher interface
type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) Enrich(ctx context.Context, destination string) model.LocaleContext {
	args := m.Called(ctx, destination)
	return args.Get(0).(model.LocaleContext)
}
