// Package enrichment resolves optional country facts for a destination.
// Failures are logged and swallowed; callers always get a usable value.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"

	"github.com/alexivanou/tripsynth-api/internal/config"
	"github.com/alexivanou/tripsynth-api/internal/geo"
	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Enricher fetches locale context from a REST Countries style endpoint
type Enricher struct {
	cfg        config.LocaleConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewEnricher creates an Enricher. A nil httpClient gets one bounded by cfg.Timeout.
func NewEnricher(cfg config.LocaleConfig, httpClient *http.Client, logger *zap.Logger) *Enricher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{cfg: cfg, httpClient: httpClient, logger: logger}
}

type country struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital    []string                   `json:"capital"`
	Languages  map[string]string          `json:"languages"`
	Currencies map[string]json.RawMessage `json:"currencies"`
	Timezones  []string                   `json:"timezones"`
	Flags      struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
}

// Enrich returns locale facts for destination, or an empty context when the
// destination is unknown or the endpoint fails.
func (e *Enricher) Enrich(ctx context.Context, destination string) model.LocaleContext {
	place, ok := geo.Lookup(destination)
	if !ok {
		e.logger.Debug("No country known for destination", zap.String("destination", destination))
		return model.LocaleContext{}
	}

	c, err := e.fetch(ctx, place.Country)
	if err != nil {
		e.logger.Warn("Locale lookup failed",
			zap.String("destination", destination),
			zap.String("country", place.Country),
			zap.Error(err))
		return model.LocaleContext{}
	}

	locale := model.LocaleContext{
		CountryName:  c.Name.Common,
		Languages:    sortedValues(c.Languages),
		Currencies:   sortedKeys(c.Currencies),
		FlagAssetURL: c.Flags.PNG,
	}
	if locale.CountryName == "" {
		locale.CountryName = place.Country
	}
	if len(c.Capital) > 0 {
		locale.Capital = c.Capital[0]
	}
	if len(c.Timezones) > 0 {
		locale.Timezone = c.Timezones[0]
	}
	if locale.FlagAssetURL == "" {
		locale.FlagAssetURL = c.Flags.SVG
	}
	return locale
}

func (e *Enricher) fetch(ctx context.Context, countryName string) (*country, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/v3.1/name/%s?fullText=true", e.cfg.Endpoint, url.PathEscape(countryName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call locale endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("locale endpoint returned %s", resp.Status)
	}

	var countries []country
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&countries); err != nil {
		return nil, fmt.Errorf("failed to decode locale response: %w", err)
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("no country named %q", countryName)
	}
	return &countries[0], nil
}

func sortedValues(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	out := lo.Uniq(lo.Values(m))
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	out := lo.Keys(m)
	sort.Strings(out)
	return out
}
