package fallback

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexivanou/tripsynth-api/internal/geo"
	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/alexivanou/tripsynth-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_AlwaysValid(t *testing.T) {
	v := validation.New()
	groups := []model.TravelerGroup{model.TravelerSolo, model.TravelerCouple, model.TravelerFamily, model.TravelerFriends}
	budgets := []model.BudgetTier{model.BudgetLow, model.BudgetMedium, model.BudgetHigh, ""}
	destinations := []string{"Paris", "İstanbul, Türkiye", "Atlantis", strings.Repeat("Llanfair", 12)}

	for _, dest := range destinations {
		for _, g := range groups {
			for _, b := range budgets {
				for _, days := range []int{1, 2, 7, 30} {
					req := model.TripRequest{
						Destination:   dest,
						DurationDays:  days,
						TravelerGroup: g,
						BudgetTier:    b,
						Interests:     []string{"food", "history", "nightlife"},
						StartDate:     "2026-06-01",
					}
					name := fmt.Sprintf("%.12s/%s/%s/%d", dest, g, b, days)
					t.Run(name, func(t *testing.T) {
						it := Synthesize(req)
						require.NoError(t, v.Itinerary(&it, req))
						require.Len(t, it.DailyPlans, days)
						for i, d := range it.DailyPlans {
							assert.Equal(t, i+1, d.Day)
						}
					})
				}
			}
		}
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	req := model.TripRequest{
		Destination:   "Paris",
		DurationDays:  3,
		TravelerGroup: model.TravelerCouple,
		BudgetTier:    model.BudgetHigh,
		Interests:     []string{"Art", "food"},
	}
	reordered := req
	reordered.Interests = []string{"food", " art ", "FOOD"}

	first := Synthesize(req)
	assert.Equal(t, first, Synthesize(req))
	assert.Equal(t, first, Synthesize(reordered))
}

func TestSynthesize_CoordinatesNearAnchor(t *testing.T) {
	req := model.TripRequest{Destination: "Tokyo", DurationDays: 5, TravelerGroup: model.TravelerSolo}
	it := Synthesize(req)

	box := geo.BoxAround(35.6762, 139.6503, 5)
	for _, d := range it.DailyPlans {
		for _, a := range d.Activities() {
			assert.True(t, box.Contains(a.Coordinates.Lat, a.Coordinates.Lng), "%s at %+v", a.Name, a.Coordinates)
		}
	}
}

func TestSynthesize_Tiers(t *testing.T) {
	tests := []struct {
		budget model.BudgetTier
		stay   string
		cost   string
	}{
		{model.BudgetLow, "Central Backpackers Hostel", "Free-$15"},
		{model.BudgetMedium, "Courtyard Boutique Hotel", "$15-40"},
		{model.BudgetHigh, "Grand Palace Hotel & Spa", "$40-120"},
		{"", "Courtyard Boutique Hotel", "$15-40"},
	}

	for _, tt := range tests {
		t.Run(string(tt.budget), func(t *testing.T) {
			it := Synthesize(model.TripRequest{Destination: "Rome", DurationDays: 2, TravelerGroup: model.TravelerFamily, BudgetTier: tt.budget})
			assert.Equal(t, tt.stay, it.AccommodationSuggestions[0].Name)
			assert.Equal(t, tt.cost, it.DailyPlans[0].Morning.Activities[0].Cost)
			assert.Equal(t, "Family with children", it.TripSummary.Travelers)
			assert.Contains(t, it.PackingList, "Snacks and entertainment for children")
		})
	}
}

func TestResolveThemes(t *testing.T) {
	tests := []struct {
		name      string
		interests []string
		want      []string
	}{
		{name: "none", interests: nil, want: []string{defaultTheme}},
		{name: "unknown only", interests: []string{"quantum physics"}, want: []string{defaultTheme}},
		{name: "keywords", interests: []string{"Local Food", "museums"}, want: []string{"art", "food"}},
		{name: "duplicates", interests: []string{"hiking", "Hiking", "parks"}, want: []string{"nature"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveThemes(tt.interests))
		})
	}
}
