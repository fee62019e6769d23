package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TravelerGroup describes who is travelling
type TravelerGroup string

const (
	TravelerSolo    TravelerGroup = "solo"
	TravelerCouple  TravelerGroup = "couple"
	TravelerFamily  TravelerGroup = "family"
	TravelerFriends TravelerGroup = "friends"
)

// BudgetTier is the coarse price level a traveler asks for
type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

const (
	MinDurationDays = 1
	MaxDurationDays = 30
)

// TripRequest holds traveler preferences for one generation call.
// It is never persisted as-is.
type TripRequest struct {
	Destination         string        `json:"destination" validate:"required,max=100"`
	DurationDays        int           `json:"duration_days" validate:"min=1,max=30"`
	TravelerGroup       TravelerGroup `json:"traveler_group" validate:"required,oneof=solo couple family friends"`
	Interests           []string      `json:"interests" validate:"max=10,dive,max=40"`
	TransportPreference string        `json:"transport_preference,omitempty" validate:"max=40"`
	BudgetTier          BudgetTier    `json:"budget_tier,omitempty" validate:"omitempty,oneof=low medium high"`
	StartDate           string        `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// EffectiveBudget returns the requested tier, or medium when none was given
func (r TripRequest) EffectiveBudget() BudgetTier {
	if r.BudgetTier == "" {
		return BudgetMedium
	}
	return r.BudgetTier
}

// Trip is a persisted itinerary together with its owner and saved state
type Trip struct {
	ID                  int64      `json:"id" db:"id"`
	OwnerID             int64      `json:"owner_id" db:"owner_id"`
	IsSaved             bool       `json:"is_saved" db:"is_saved"`
	DisplayName         *string    `json:"display_name" db:"display_name"`
	Destination         string     `json:"destination" db:"destination"`
	CountryName         *string    `json:"country_name,omitempty" db:"country_name"`
	DurationDays        int        `json:"duration_days" db:"duration_days"`
	TravelerGroup       string     `json:"traveler_group" db:"traveler_group"`
	Interests           StringList `json:"interests" db:"interests"`
	BudgetTier          *string    `json:"budget_tier,omitempty" db:"budget_tier"`
	TransportPreference *string    `json:"transport_preference,omitempty" db:"transport_preference"`
	PlanPayload         Payload    `json:"plan" db:"plan_payload"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// Page limits a list query
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// Normalize applies the default limit and clamps out-of-range values
func (p Page) Normalize() Page {
	if p.Limit <= 0 || p.Limit > MaxPageLimit {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// StringList is a string slice stored as a JSON array column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}
	*l = out
	return nil
}

// Payload is an opaque JSON document stored verbatim
type Payload []byte

// Value implements driver.Valuer
func (p Payload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	return string(p), nil
}

// Scan implements sql.Scanner
func (p *Payload) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = nil
	case []byte:
		*p = append(Payload(nil), v...)
	case string:
		*p = Payload(v)
	default:
		return fmt.Errorf("cannot scan %T into Payload", src)
	}
	return nil
}

// MarshalJSON emits the stored document as-is
func (p Payload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON keeps a copy of the raw document
func (p *Payload) UnmarshalJSON(data []byte) error {
	*p = append(Payload(nil), data...)
	return nil
}
