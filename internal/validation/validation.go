// Package validation is the trust boundary for itinerary payloads. Nothing
// returned by the generative endpoint reaches the rest of the service until
// Parse has accepted it.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/alexivanou/tripsynth-api/internal/geo"
	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidResponse marks a generated payload that cannot be used
	ErrInvalidResponse = errors.New("invalid itinerary response")
	// ErrInvalidRequest marks traveler preferences that fail validation
	ErrInvalidRequest = errors.New("invalid trip request")
)

// Validator checks requests and generated itineraries. Safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Request validates traveler preferences
func (v *Validator) Request(req model.TripRequest) error {
	var violations []string
	if strings.TrimSpace(req.Destination) == "" {
		violations = append(violations, "destination is required")
	}
	if err := v.validate.Struct(req); err != nil {
		violations = append(violations, describe(err)...)
	}
	if len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(violations, "; "))
	}
	return nil
}

// Parse extracts, decodes and validates a raw payload for the given request.
// Any violation rejects the whole payload.
func (v *Validator) Parse(raw string, req model.TripRequest) (*model.Itinerary, error) {
	doc, err := ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(doc)))
	dec.DisallowUnknownFields()

	var it model.Itinerary
	if err := dec.Decode(&it); err != nil {
		return nil, fmt.Errorf("%w: failed to decode: %v", ErrInvalidResponse, err)
	}

	if err := v.Itinerary(&it, req); err != nil {
		return nil, err
	}
	return &it, nil
}

// Itinerary validates an already decoded itinerary against the request
func (v *Validator) Itinerary(it *model.Itinerary, req model.TripRequest) error {
	var violations []string

	if err := v.validate.Struct(it); err != nil {
		violations = append(violations, describe(err)...)
	}
	violations = append(violations, checkDays(it, req.DurationDays)...)
	violations = append(violations, checkCoordinates(it, geo.BoundsFor(req.Destination))...)
	violations = append(violations, checkPlaceholders(it)...)

	if len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidResponse, strings.Join(violations, "; "))
	}
	return nil
}

func checkDays(it *model.Itinerary, durationDays int) []string {
	var out []string
	if len(it.DailyPlans) != durationDays {
		out = append(out, fmt.Sprintf("daily_plans has %d entries, want %d", len(it.DailyPlans), durationDays))
	}
	if it.TripSummary.DurationDays != durationDays {
		out = append(out, fmt.Sprintf("trip_summary.duration_days is %d, want %d", it.TripSummary.DurationDays, durationDays))
	}
	for i, d := range it.DailyPlans {
		if d.Day != i+1 {
			out = append(out, fmt.Sprintf("daily_plans[%d].day is %d, want %d", i, d.Day, i+1))
		}
	}
	return out
}

func checkCoordinates(it *model.Itinerary, box geo.Box) []string {
	var out []string
	for _, d := range it.DailyPlans {
		for _, a := range d.Activities() {
			c := a.Coordinates
			if c.Lat == 0 && c.Lng == 0 {
				out = append(out, fmt.Sprintf("day %d: %q has no coordinates", d.Day, a.Name))
				continue
			}
			if !box.Contains(c.Lat, c.Lng) {
				out = append(out, fmt.Sprintf("day %d: %q at (%.4f, %.4f) is outside the destination area",
					d.Day, a.Name, c.Lat, c.Lng))
			}
		}
	}
	return out
}

var (
	placeholderPrefix = regexp.MustCompile(`(?i)^(test|sample|example|dummy|generic|placeholder|tbd|n/a|unknown|none)\b`)
	placeholderGeneric = regexp.MustCompile(`(?i)^(a |the |local |popular |nearby |famous )?` +
		`(restaurant|cafe|café|museum|hotel|hostel|place|park|market|bar|attraction|venue|activity|location|landmark)` +
		`( name)?( ?#?\d+)?$`)
	placeholderAnywhere = regexp.MustCompile(`(?i)(lorem ipsum|placeholder|\b(hotel|restaurant|venue) name\b)`)
)

// IsPlaceholder reports whether a venue name is generic filler
func IsPlaceholder(name string) bool {
	n := strings.TrimSpace(name)
	return placeholderPrefix.MatchString(n) || placeholderGeneric.MatchString(n) || placeholderAnywhere.MatchString(n)
}

func checkPlaceholders(it *model.Itinerary) []string {
	var out []string
	flag := func(where, name string) {
		if IsPlaceholder(name) {
			out = append(out, fmt.Sprintf("%s: %q is a placeholder name", where, name))
		}
	}
	for _, d := range it.DailyPlans {
		for _, a := range d.Activities() {
			flag(fmt.Sprintf("day %d activity", d.Day), a.Name)
		}
		flag(fmt.Sprintf("day %d lunch", d.Day), d.Lunch.Name)
		flag(fmt.Sprintf("day %d dinner", d.Day), d.Dinner.Name)
	}
	for i, a := range it.AccommodationSuggestions {
		flag(fmt.Sprintf("accommodation_suggestions[%d]", i), a.Name)
	}
	return out
}

func describe(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, formatFieldError(e))
	}
	return out
}

func formatFieldError(e validator.FieldError) string {
	// Drop the root type name: "Itinerary.daily_plans[0].title" -> "daily_plans[0].title"
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, e.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", field, e.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}
