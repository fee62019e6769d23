// Package fallback builds complete itineraries from local templates. It never
// touches the network and always returns a usable plan.
package fallback

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexivanou/tripsynth-api/internal/geo"
	"github.com/alexivanou/tripsynth-api/internal/model"
	"github.com/samber/lo"
)

// destination text embedded in longer fields is clipped to this many runes
const destClip = 40

// Synthesize returns a deterministic itinerary for the request. Identical
// requests, including interests given in a different order, produce identical
// plans.
func Synthesize(req model.TripRequest) model.Itinerary {
	days := min(max(req.DurationDays, model.MinDurationDays), model.MaxDurationDays)
	dest := strings.TrimSpace(req.Destination)
	short := clip(dest, destClip)
	budget := tiers[req.EffectiveBudget()]
	group := groupNotes[req.TravelerGroup]
	if group.travelers == "" {
		group = groupNotes[model.TravelerSolo]
	}

	selected := resolveThemes(req.Interests)
	anchorLat, anchorLng := geo.AnchorFor(dest)

	plans := make([]model.DayPlan, days)
	for i := range plans {
		day := i + 1
		at := func(slot int) model.Coordinates {
			dLat, dLng := offset(day, slot)
			return model.Coordinates{Lat: round4(anchorLat + dLat), Lng: round4(anchorLng + dLng)}
		}
		morning := pick(selected, i*2)
		afternoon := pick(selected, i*2+1)
		evening := eveningFor(req.TravelerGroup, i)

		plans[i] = model.DayPlan{
			Day:   day,
			Title: clip(fmt.Sprintf("Day %d: %s in %s", day, themes[selected[i%len(selected)]].title, short), model.MaxNameLen),
			Morning: model.TimeBlock{
				Time:       "09:00 - 12:00",
				Activities: []model.Activity{activity(morning, short, day, 0, budget, at(0))},
			},
			Lunch: meal("12:30", lunchVenues[i%len(lunchVenues)], "Regional", budget, short, day, 3),
			Afternoon: model.TimeBlock{
				Time:       "14:00 - 17:30",
				Activities: []model.Activity{activity(afternoon, short, day, 1, budget, at(1))},
			},
			Evening: model.TimeBlock{
				Time:       "19:00 - 21:00",
				Activities: []model.Activity{activity(evening, short, day, 2, budget, at(2))},
			},
			Dinner: meal("20:00", dinnerVenues[i%len(dinnerVenues)], "Local and international", budget, short, day, 4),
			DailyTips: model.DailyTips{
				Weather:              "Check the forecast the evening before and carry a light layer.",
				Clothing:             "Comfortable shoes and modest clothing for religious sites.",
				EstimatedDailyBudget: fmt.Sprintf("$%d-%d per person", budget.dailyMin, budget.dailyMax),
				ImportantNotes:       group.tip,
			},
			Transportation: model.Transportation{
				GettingAround: budget.transport,
				EstimatedCost: transportCost(req.EffectiveBudget()),
			},
		}
	}

	stays := make([]model.Accommodation, len(budget.stays))
	for i, s := range budget.stays {
		s.Location = clip(fmt.Sprintf("%s district, %s", quarters[i%len(quarters)], dest), model.MaxAddressLen)
		s.WhyRecommended = group.stayWhy
		stays[i] = s
	}

	return model.Itinerary{
		TripSummary: model.TripSummary{
			Destination:     clip(dest, model.MaxNameLen),
			DurationDays:    days,
			Travelers:       group.travelers,
			EstimatedCost:   fmt.Sprintf("$%d-%d per person", budget.dailyMin*days, budget.dailyMax*days),
			BestSeason:      "Spring and autumn usually offer mild weather and fewer crowds.",
			WeatherForecast: "No live forecast available; check local conditions before departure.",
			StartDate:       startDate(req.StartDate),
		},
		DailyPlans:               plans,
		AccommodationSuggestions: stays,
		GeneralTips: model.GeneralTips{
			LocalCustoms:  "Learn a few greetings and follow local dress codes at religious sites.",
			Safety:        "Keep valuables out of sight in crowded areas and use licensed taxis.",
			Money:         "Carry a card and a little cash for markets and small cafes.",
			UsefulPhrases: []string{"Hello", "Thank you", "Excuse me", "How much is this?"},
		},
		PackingList: packingList(req),
	}
}

// resolveThemes maps free-text interests onto template themes, sorted so the
// result does not depend on input order.
func resolveThemes(interests []string) []string {
	normalized := lo.Uniq(lo.FilterMap(interests, func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	}))

	var out []string
	for _, interest := range normalized {
		for key, th := range themes {
			if lo.SomeBy(th.keywords, func(k string) bool { return strings.Contains(interest, k) }) {
				out = append(out, key)
			}
		}
	}
	out = lo.Uniq(out)
	if len(out) == 0 {
		return []string{defaultTheme}
	}
	sort.Strings(out)
	return out
}

func pick(selected []string, slot int) template {
	th := themes[selected[slot%len(selected)]]
	return th.templates[(slot/len(selected))%len(th.templates)]
}

func eveningFor(group model.TravelerGroup, dayIndex int) template {
	list, ok := eveningTemplates[group]
	if !ok {
		list = eveningTemplates[model.TravelerSolo]
	}
	return list[dayIndex%len(list)]
}

func activity(t template, dest string, day, slot int, budget tier, c model.Coordinates) model.Activity {
	return model.Activity{
		Name:        t.name,
		Category:    t.category,
		Address:     address(dest, day, slot),
		Coordinates: c,
		Duration:    t.duration,
		Cost:        budget.activityCost,
		Description: clip(fmt.Sprintf(t.description, dest), model.MaxDescriptionLen),
	}
}

func meal(at, name, cuisine string, budget tier, dest string, day, slot int) model.MealRecommendation {
	return model.MealRecommendation{
		Time:        at,
		Name:        name,
		Cuisine:     cuisine,
		AverageCost: budget.mealCost,
		Address:     address(dest, day, slot),
	}
}

func address(dest string, day, slot int) string {
	q := quarters[(day*5+slot)%len(quarters)]
	return clip(fmt.Sprintf("%s quarter, %s", q, dest), model.MaxAddressLen)
}

// offset spreads venues a few hundred metres to ~2.5 km around the anchor.
// dLat always ends in 5 at the fourth decimal, so anchor+dLat is never zero
// for anchors given to two or four decimals.
func offset(day, slot int) (dLat, dLng float64) {
	k := day*3 + slot
	dLat = 0.0045 + 0.003*float64(k%7)
	dLng = 0.004 + 0.003*float64((k*3)%7)
	if k%2 == 1 {
		dLat = -dLat
	}
	if (k/2)%2 == 1 {
		dLng = -dLng
	}
	return dLat, dLng
}

func transportCost(b model.BudgetTier) string {
	switch b {
	case model.BudgetLow:
		return "$5-10 per day"
	case model.BudgetHigh:
		return "$60-120 per day"
	default:
		return "$15-30 per day"
	}
}

func packingList(req model.TripRequest) []string {
	items := append([]string(nil), packingBase...)
	if req.TravelerGroup == model.TravelerFamily {
		items = append(items, "Snacks and entertainment for children")
	}
	if req.DurationDays > 7 {
		items = append(items, "Laundry bag")
	}
	return items
}

func startDate(s string) string {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}

func round4(v float64) float64 {
	return float64(int64(v*10000+sign(v)*0.5)) / 10000
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
