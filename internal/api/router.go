package api

import (
	"github.com/alexivanou/tripsynth-api/internal/metrics"
	"github.com/alexivanou/tripsynth-api/internal/service"
	"github.com/alexivanou/tripsynth-api/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, m *metrics.Metrics, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewHandler(service, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(requestLogger(logger))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	if m != nil {
		router.Handle("/metrics", m.Handler()).Methods("GET")
	}

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// Owner-scoped routes
	owned := v1.NewRoute().Subrouter()
	owned.Use(requireOwner)
	owned.HandleFunc("/itineraries", handler.GenerateItinerary).Methods("POST")
	owned.HandleFunc("/trips", handler.ListTrips).Methods("GET")
	owned.HandleFunc("/trips/{id:[0-9]+}", handler.GetTrip).Methods("GET")
	owned.HandleFunc("/trips/{id:[0-9]+}", handler.DeleteTrip).Methods("DELETE")
	owned.HandleFunc("/trips/{id:[0-9]+}/save", handler.SaveTrip).Methods("PUT")
	owned.HandleFunc("/trips/{id:[0-9]+}/calendar", handler.ExportCalendar).Methods("GET")
	owned.HandleFunc("/owner", handler.DeleteOwner).Methods("DELETE")

	return router
}
