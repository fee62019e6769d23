package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/alexivanou/tripsynth-api/internal/service"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// GenerateItinerary handles POST /api/v1/itineraries
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	var req model.TripRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.GenerateItinerary(r.Context(), req, ownerFrom(r.Context()))
	if err != nil {
		h.handleServiceError(w, "Error generating itinerary", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, model.GenerateResponse{
		TripID:         result.TripID,
		Source:         string(result.Source),
		FallbackReason: string(result.FallbackReason),
		Stages:         lo.Map(result.Stages, func(s service.Stage, _ int) string { return string(s) }),
		Itinerary:      result.Itinerary,
	})
}

// ListTrips handles GET /api/v1/trips
func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var isSaved *bool
	if s := q.Get("saved"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid saved parameter")
			return
		}
		isSaved = &v
	}

	var page model.Page
	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit <= 0 {
			h.writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		page.Limit = limit
	}
	if s := q.Get("offset"); s != "" {
		offset, err := strconv.Atoi(s)
		if err != nil || offset < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid offset parameter")
			return
		}
		page.Offset = offset
	}
	page = page.Normalize()

	trips, err := h.service.ListTrips(r.Context(), ownerFrom(r.Context()), isSaved, page)
	if err != nil {
		h.handleServiceError(w, "Error listing trips", err)
		return
	}
	if trips == nil {
		trips = []model.Trip{}
	}

	h.writeJSON(w, http.StatusOK, model.TripListResponse{
		Trips:  trips,
		Count:  len(trips),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GetTrip handles GET /api/v1/trips/{id}
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.tripID(w, r)
	if !ok {
		return
	}

	trip, err := h.service.GetTrip(r.Context(), tripID, ownerFrom(r.Context()))
	if err != nil {
		h.handleServiceError(w, "Error getting trip", err)
		return
	}
	h.writeJSON(w, http.StatusOK, trip)
}

// SaveTrip handles PUT /api/v1/trips/{id}/save
func (h *Handler) SaveTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.tripID(w, r)
	if !ok {
		return
	}

	var body model.SaveTripRequest
	if err := decodeBody(w, r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.service.PromoteTrip(r.Context(), tripID, ownerFrom(r.Context()), body.DisplayName)
	if err != nil {
		h.handleServiceError(w, "Error saving trip", err)
		return
	}
	h.writeJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/v1/trips/{id}
func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.tripID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTrip(r.Context(), tripID, ownerFrom(r.Context())); err != nil {
		h.handleServiceError(w, "Error deleting trip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCalendar handles GET /api/v1/trips/{id}/calendar
func (h *Handler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	tripID, ok := h.tripID(w, r)
	if !ok {
		return
	}

	doc, err := h.service.ExportCalendar(r.Context(), tripID, ownerFrom(r.Context()))
	if err != nil {
		h.handleServiceError(w, "Error exporting calendar", err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\"trip-"+strconv.FormatInt(tripID, 10)+".ics\"")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		h.logger.Warn("Error writing calendar", zap.Error(err))
	}
}

// DeleteOwner handles DELETE /api/v1/owner
func (h *Handler) DeleteOwner(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOwner(r.Context(), ownerFrom(r.Context())); err != nil {
		h.handleServiceError(w, "Error deleting owner", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) tripID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid trip id")
		return 0, false
	}
	return id, true
}

// handleServiceError maps service sentinels to status codes
func (h *Handler) handleServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidDisplayName):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidOwner):
		h.writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "trip not found")
	default:
		h.logger.Error(msg, zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Error encoding response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
