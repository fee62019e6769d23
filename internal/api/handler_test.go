package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/alexivanou/tripsynth-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockService is a mock implementation of ServiceInterface
type MockService struct {
	mock.Mock
}

func (m *MockService) GenerateItinerary(ctx context.Context, req model.TripRequest, ownerID int64) (*service.GenerationResult, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerationResult), args.Error(1)
}

func (m *MockService) ListTrips(ctx context.Context, ownerID int64, isSaved *bool, page model.Page) ([]model.Trip, error) {
	args := m.Called(ctx, ownerID, isSaved, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trip), args.Error(1)
}

func (m *MockService) GetTrip(ctx context.Context, tripID, ownerID int64) (*model.Trip, error) {
	args := m.Called(ctx, tripID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

func (m *MockService) PromoteTrip(ctx context.Context, tripID, ownerID int64, displayName string) (*model.Trip, error) {
	args := m.Called(ctx, tripID, ownerID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

func (m *MockService) DeleteTrip(ctx context.Context, tripID, ownerID int64) error {
	return m.Called(ctx, tripID, ownerID).Error(0)
}

func (m *MockService) DeleteOwner(ctx context.Context, ownerID int64) error {
	return m.Called(ctx, ownerID).Error(0)
}

func (m *MockService) ExportCalendar(ctx context.Context, tripID, ownerID int64) (string, error) {
	args := m.Called(ctx, tripID, ownerID)
	return args.String(0), args.Error(1)
}

func serve(t *testing.T, ms *MockService, method, target, owner, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(ms, nil, nil, nil)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if owner != "" {
		req.Header.Set(OwnerHeader, owner)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_GenerateItinerary(t *testing.T) {
	tests := []struct {
		name           string
		owner          string
		body           string
		mockSetup      func(*MockService)
		expectedStatus int
	}{
		{
			name:  "successful request",
			owner: "42",
			body:  `{"destination":"Kyoto","duration_days":2,"traveler_group":"solo","interests":["food"]}`,
			mockSetup: func(ms *MockService) {
				ms.On("GenerateItinerary", mock.Anything, mock.MatchedBy(func(req model.TripRequest) bool {
					return req.Destination == "Kyoto" && req.DurationDays == 2 && req.Interests[0] == "food"
				}), int64(42)).Return(&service.GenerationResult{
					TripID:         9,
					Source:         service.SourceFallback,
					FallbackReason: service.ReasonNotConfigured,
					Stages:         []service.Stage{service.StageReceived, service.StageFallback},
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing owner header",
			body:           `{"destination":"Kyoto","duration_days":2,"traveler_group":"solo"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "non numeric owner header",
			owner:          "abc",
			body:           `{"destination":"Kyoto","duration_days":2,"traveler_group":"solo"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed body",
			owner:          "42",
			body:           `{"destination":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown field",
			owner:          "42",
			body:           `{"destination":"Kyoto","nights":2}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "invalid preferences",
			owner: "42",
			body:  `{"destination":"Kyoto","duration_days":0,"traveler_group":"solo"}`,
			mockSetup: func(ms *MockService) {
				ms.On("GenerateItinerary", mock.Anything, mock.Anything, int64(42)).
					Return(nil, service.ErrInvalidRequest)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "store failure",
			owner: "42",
			body:  `{"destination":"Kyoto","duration_days":2,"traveler_group":"solo"}`,
			mockSetup: func(ms *MockService) {
				ms.On("GenerateItinerary", mock.Anything, mock.Anything, int64(42)).
					Return(nil, errors.New("failed to persist trip: disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}

			rr := serve(t, mockService, "POST", "/api/v1/itineraries", tt.owner, tt.body)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GenerateItinerary_Body(t *testing.T) {
	mockService := new(MockService)
	mockService.On("GenerateItinerary", mock.Anything, mock.Anything, int64(42)).Return(&service.GenerationResult{
		TripID:         9,
		Source:         service.SourceFallback,
		FallbackReason: service.ReasonTimeout,
		Stages:         []service.Stage{service.StageReceived, service.StageFallback, service.StageDone},
	}, nil)

	rr := serve(t, mockService, "POST", "/api/v1/itineraries", "42", `{"destination":"Oslo","duration_days":1,"traveler_group":"friends"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp model.GenerateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(9), resp.TripID)
	assert.Equal(t, "fallback", resp.Source)
	assert.Equal(t, "timeout", resp.FallbackReason)
	assert.Equal(t, []string{"RECEIVED", "FALLBACK", "DONE"}, resp.Stages)
}

func TestHandler_ListTrips(t *testing.T) {
	saved := true
	unsaved := false

	tests := []struct {
		name           string
		query          string
		mockSetup      func(*MockService)
		expectedStatus int
		expectedCount  int
	}{
		{
			name:  "defaults",
			query: "",
			mockSetup: func(ms *MockService) {
				ms.On("ListTrips", mock.Anything, int64(42), (*bool)(nil), model.Page{Limit: 100}).
					Return([]model.Trip{{ID: 2}, {ID: 1}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:  "saved only with paging",
			query: "?saved=true&limit=5&offset=10",
			mockSetup: func(ms *MockService) {
				ms.On("ListTrips", mock.Anything, int64(42), &saved, model.Page{Limit: 5, Offset: 10}).
					Return([]model.Trip{{ID: 3, IsSaved: true}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:  "unsaved and empty",
			query: "?saved=false",
			mockSetup: func(ms *MockService) {
				ms.On("ListTrips", mock.Anything, int64(42), &unsaved, model.Page{Limit: 100}).
					Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "invalid saved parameter",
			query:          "?saved=maybe",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid limit parameter",
			query:          "?limit=-3",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid offset parameter",
			query:          "?offset=x",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}

			rr := serve(t, mockService, "GET", "/api/v1/trips"+tt.query, "42", "")
			require.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp model.TripListResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedCount, resp.Count)
				assert.Len(t, resp.Trips, tt.expectedCount)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_TripRoutes(t *testing.T) {
	name := "Alps"

	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		mockSetup      func(*MockService)
		expectedStatus int
	}{
		{
			name:   "get trip",
			method: "GET",
			target: "/api/v1/trips/7",
			mockSetup: func(ms *MockService) {
				ms.On("GetTrip", mock.Anything, int64(7), int64(42)).Return(&model.Trip{ID: 7, OwnerID: 42}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "get trip of another owner",
			method: "GET",
			target: "/api/v1/trips/8",
			mockSetup: func(ms *MockService) {
				ms.On("GetTrip", mock.Anything, int64(8), int64(42)).Return(nil, service.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non numeric id",
			method:         "GET",
			target:         "/api/v1/trips/abc",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "save trip",
			method: "PUT",
			target: "/api/v1/trips/7/save",
			body:   `{"display_name":"Alps"}`,
			mockSetup: func(ms *MockService) {
				ms.On("PromoteTrip", mock.Anything, int64(7), int64(42), "Alps").
					Return(&model.Trip{ID: 7, IsSaved: true, DisplayName: &name}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "save trip without name",
			method: "PUT",
			target: "/api/v1/trips/7/save",
			body:   `{"display_name":""}`,
			mockSetup: func(ms *MockService) {
				ms.On("PromoteTrip", mock.Anything, int64(7), int64(42), "").Return(nil, service.ErrInvalidDisplayName)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "delete trip",
			method: "DELETE",
			target: "/api/v1/trips/7",
			mockSetup: func(ms *MockService) {
				ms.On("DeleteTrip", mock.Anything, int64(7), int64(42)).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "delete missing trip",
			method: "DELETE",
			target: "/api/v1/trips/7",
			mockSetup: func(ms *MockService) {
				ms.On("DeleteTrip", mock.Anything, int64(7), int64(42)).Return(service.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "delete owner",
			method: "DELETE",
			target: "/api/v1/owner",
			mockSetup: func(ms *MockService) {
				ms.On("DeleteOwner", mock.Anything, int64(42)).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}

			rr := serve(t, mockService, tt.method, tt.target, "42", tt.body)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_ExportCalendar(t *testing.T) {
	mockService := new(MockService)
	mockService.On("ExportCalendar", mock.Anything, int64(7), int64(42)).
		Return("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", nil)

	rr := serve(t, mockService, "GET", "/api/v1/trips/7/calendar", "42", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "trip-7.ics")
	assert.True(t, strings.HasPrefix(rr.Body.String(), "BEGIN:VCALENDAR"))
}

func TestHandler_HealthCheck(t *testing.T) {
	rr := serve(t, new(MockService), "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}
