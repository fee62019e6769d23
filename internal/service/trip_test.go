package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexivanou/tripsynth-api/internal/fallback"
	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPromoteTrip(t *testing.T) {
	name := "Paris in spring"

	tests := []struct {
		name        string
		tripID      int64
		ownerID     int64
		displayName string
		setupMock   func(m *MockTripRepository)
		wantErr     error
	}{
		{
			name:        "Empty display name",
			tripID:      7,
			ownerID:     42,
			displayName: "",
			setupMock:   func(m *MockTripRepository) {},
			wantErr:     ErrInvalidDisplayName,
		},
		{
			name:        "Whitespace display name",
			tripID:      7,
			ownerID:     42,
			displayName: "   ",
			setupMock:   func(m *MockTripRepository) {},
			wantErr:     ErrInvalidDisplayName,
		},
		{
			name:        "Too long display name",
			tripID:      7,
			ownerID:     42,
			displayName: strings.Repeat("x", maxDisplayNameLen+1),
			setupMock:   func(m *MockTripRepository) {},
			wantErr:     ErrInvalidDisplayName,
		},
		{
			name:        "Trip of another owner",
			tripID:      7,
			ownerID:     43,
			displayName: name,
			setupMock: func(m *MockTripRepository) {
				m.On("Promote", mock.Anything, int64(7), int64(43), name).Return(nil, ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:        "Success trims name",
			tripID:      7,
			ownerID:     42,
			displayName: "  " + name + " ",
			setupMock: func(m *MockTripRepository) {
				m.On("Promote", mock.Anything, int64(7), int64(42), name).
					Return(&model.Trip{ID: 7, OwnerID: 42, IsSaved: true, DisplayName: &name}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(false)
			tt.setupMock(f.trips)

			trip, err := f.svc.PromoteTrip(context.Background(), tt.tripID, tt.ownerID, tt.displayName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, trip)
				assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.TripsPromoted))
			} else {
				require.NoError(t, err)
				assert.True(t, trip.IsSaved)
				assert.Equal(t, name, *trip.DisplayName)
				assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TripsPromoted))
			}
			f.trips.AssertExpectations(t)
		})
	}
}

func TestListTrips(t *testing.T) {
	saved := true

	t.Run("passes filter and normalized page", func(t *testing.T) {
		f := newFixture(false)
		want := []model.Trip{{ID: 2, OwnerID: 42, IsSaved: true}, {ID: 1, OwnerID: 42, IsSaved: true}}
		f.trips.On("List", mock.Anything, int64(42), &saved, model.Page{Limit: 100, Offset: 0}).Return(want, nil)

		got, err := f.svc.ListTrips(context.Background(), 42, &saved, model.Page{Limit: 1000, Offset: -1})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(false)
		f.trips.On("List", mock.Anything, int64(42), (*bool)(nil), model.Page{Limit: 100}).Return(nil, errors.New("connection reset"))

		_, err := f.svc.ListTrips(context.Background(), 42, nil, model.Page{})
		assert.ErrorContains(t, err, "failed to list trips")
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PersistenceErrors.WithLabelValues("list")))
	})

	t.Run("invalid owner", func(t *testing.T) {
		f := newFixture(false)
		_, err := f.svc.ListTrips(context.Background(), -1, nil, model.Page{})
		assert.ErrorIs(t, err, ErrInvalidOwner)
	})
}

func TestDeleteTrip(t *testing.T) {
	f := newFixture(false)
	f.trips.On("Delete", mock.Anything, int64(7), int64(42)).Return(nil).Once()
	f.trips.On("Delete", mock.Anything, int64(7), int64(42)).Return(ErrNotFound)

	require.NoError(t, f.svc.DeleteTrip(context.Background(), 7, 42))
	assert.ErrorIs(t, f.svc.DeleteTrip(context.Background(), 7, 42), ErrNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TripsDeleted))
}

func TestDeleteOwner(t *testing.T) {
	f := newFixture(false)
	f.owners.On("Delete", mock.Anything, int64(42)).Return(nil)
	f.owners.On("Delete", mock.Anything, int64(43)).Return(ErrNotFound)

	assert.NoError(t, f.svc.DeleteOwner(context.Background(), 42))
	assert.ErrorIs(t, f.svc.DeleteOwner(context.Background(), 43), ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteOwner(context.Background(), 0), ErrInvalidOwner)
}

func TestExportCalendar(t *testing.T) {
	req := parisRequest()
	req.StartDate = "2026-06-01"
	payload, err := json.Marshal(fallback.Synthesize(req))
	require.NoError(t, err)

	name := "Paris getaway"
	trip := &model.Trip{
		ID:          7,
		OwnerID:     42,
		IsSaved:     true,
		DisplayName: &name,
		Destination: "Paris",
		PlanPayload: payload,
		CreatedAt:   time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
	}

	f := newFixture(false)
	f.trips.On("Get", mock.Anything, int64(7), int64(42)).Return(trip, nil)
	f.trips.On("Get", mock.Anything, int64(7), int64(43)).Return(nil, ErrNotFound)

	out, err := f.svc.ExportCalendar(context.Background(), 7, 42)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "PRODID:"+calendarProductID)
	assert.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:trip-7-day-1@tripsynth")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260601")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260603")
	assert.Contains(t, out, "SUMMARY:Day 1")

	_, err = f.svc.ExportCalendar(context.Background(), 7, 43)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCalendarStart_DefaultsToDayAfterCreation(t *testing.T) {
	trip := &model.Trip{CreatedAt: time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)}
	got := calendarStart(trip, model.Itinerary{})
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), got)
}
