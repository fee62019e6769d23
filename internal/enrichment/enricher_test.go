package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexivanou/tripsynth-api/internal/config"
	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const franceResponse = `[{
  "name": {"common": "France", "official": "French Republic"},
  "capital": ["Paris"],
  "languages": {"fra": "French"},
  "currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
  "timezones": ["UTC-10:00", "UTC+01:00"],
  "flags": {"png": "https://flagcdn.com/w320/fr.png", "svg": "https://flagcdn.com/fr.svg"}
}]`

func newEnricher(endpoint string) *Enricher {
	return NewEnricher(config.LocaleConfig{Endpoint: endpoint, Timeout: time.Second}, nil, zap.NewNop())
}

func TestEnrich_KnownDestination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.1/name/France", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("fullText"))
		_, _ = w.Write([]byte(franceResponse))
	}))
	defer server.Close()

	got := newEnricher(server.URL).Enrich(context.Background(), "Paris, France")

	assert.Equal(t, model.LocaleContext{
		CountryName:  "France",
		Capital:      "Paris",
		Languages:    []string{"French"},
		Currencies:   []string{"EUR"},
		Timezone:     "UTC-10:00",
		FlagAssetURL: "https://flagcdn.com/w320/fr.png",
	}, got)
}

func TestEnrich_PathEscapesCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.1/name/United Kingdom", r.URL.Path)
		_, _ = w.Write([]byte(`[{"name":{"common":"United Kingdom"},"capital":["London"]}]`))
	}))
	defer server.Close()

	got := newEnricher(server.URL).Enrich(context.Background(), "London")
	assert.Equal(t, "United Kingdom", got.CountryName)
	assert.Equal(t, "London", got.Capital)
	assert.Empty(t, got.Languages)
}

func TestEnrich_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "not found", handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }},
		{name: "malformed", handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"status":`)) }},
		{name: "empty array", handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[]`)) }},
		{name: "slow", handler: func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(3 * time.Second):
			case <-r.Context().Done():
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			e := NewEnricher(config.LocaleConfig{Endpoint: server.URL, Timeout: 100 * time.Millisecond}, nil, nil)
			got := e.Enrich(context.Background(), "Rome")
			assert.True(t, got.IsEmpty())
		})
	}
}

func TestEnrich_UnknownDestinationSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	got := newEnricher(server.URL).Enrich(context.Background(), "Atlantis")
	assert.True(t, got.IsEmpty())
	assert.Equal(t, int32(0), calls.Load())
}

func TestEnrich_UnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	got := newEnricher(endpoint).Enrich(context.Background(), "Tokyo")
	assert.True(t, got.IsEmpty())
}
