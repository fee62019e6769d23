// Package prompt builds the instruction sent to the generative endpoint.
// Everything here is a pure function of its inputs.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexivanou/tripsynth-api/internal/model"
)

// Prompt is the assembled instruction plus the response schema description
type Prompt struct {
	Instruction string
	Schema      string
}

// Text joins instruction and schema into the single text part sent upstream
func (p Prompt) Text() string {
	return p.Instruction + "\n\nRESPONSE SCHEMA:\n" + p.Schema
}

var travelerGuidance = map[model.TravelerGroup]string{
	model.TravelerSolo: "The traveler is alone. Favour safe, well-connected neighbourhoods, " +
		"activities where it is easy to meet people (walking tours, food markets, cooking classes) " +
		"and venues comfortable for a single guest such as counter seating.",
	model.TravelerCouple: "The travelers are a couple. Include romantic moments such as sunset viewpoints " +
		"and candle-lit dinners, keep the pace relaxed and prefer boutique hotels.",
	model.TravelerFamily: "The travelers are a family with children. Keep walking distances short, " +
		"plan rest breaks and early dinners, prefer kid-friendly museums, parks and family rooms, " +
		"and avoid nightlife.",
	model.TravelerFriends: "The travelers are a group of friends. Favour shared experiences, lively " +
		"neighbourhoods, group-friendly restaurants and some evening entertainment.",
}

var budgetPhrasing = map[model.BudgetTier]string{
	model.BudgetLow: "Budget is LOW: prefer free sights, street food, public transport and hostels " +
		"or simple guesthouses. State every price as a low range (for example \"free\" or \"5-15 EUR\").",
	model.BudgetMedium: "Budget is MEDIUM: mix paid highlights with free sights, mid-range restaurants " +
		"and 3-4 star hotels. State every price as a realistic range.",
	model.BudgetHigh: "Budget is HIGH: premium experiences, fine dining, 5-star hotels, private guides " +
		"and transfers are welcome. State every price as a realistic upper-range figure.",
}

// Build assembles the instruction for a request and its optional locale facts
func Build(req model.TripRequest, locale model.LocaleContext) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an experienced local travel planner. Create a %d-day itinerary for %s.\n",
		req.DurationDays, req.Destination)

	b.WriteString("\nTRAVELERS:\n")
	b.WriteString(travelerGuidance[req.TravelerGroup])
	b.WriteString("\n")

	b.WriteString("\nBUDGET:\n")
	b.WriteString(budgetPhrasing[req.EffectiveBudget()])
	b.WriteString("\n")

	if interests := sortedInterests(req.Interests); len(interests) > 0 {
		fmt.Fprintf(&b, "\nINTERESTS: %s. Every day must include at least one activity matching these interests.\n",
			strings.Join(interests, ", "))
	}
	if req.TransportPreference != "" {
		fmt.Fprintf(&b, "\nTRANSPORT: the travelers prefer %s; plan daily movements accordingly.\n", req.TransportPreference)
	}
	if req.StartDate != "" {
		fmt.Fprintf(&b, "\nDATES: day 1 is %s. Base weather and seasonal advice on these dates and copy the date into trip_summary.start_date.\n",
			req.StartDate)
	}

	writeLocale(&b, locale)

	b.WriteString("\nRULES:\n")
	fmt.Fprintf(&b, "- daily_plans must contain exactly %d entries with \"day\" numbered 1 to %d in order.\n",
		req.DurationDays, req.DurationDays)
	fmt.Fprintf(&b, "- trip_summary.duration_days must be %d.\n", req.DurationDays)
	b.WriteString("- Use only real, specific, currently operating venues with their actual names and street addresses.\n")
	b.WriteString("- NEVER use generic or placeholder names such as \"Local Restaurant\", \"Museum\", \"Place 1\", " +
		"\"Test Place\", \"Hotel Name\", \"TBD\" or \"N/A\".\n")
	b.WriteString("- Every activity must have coordinates (lat, lng) of the real venue, inside the destination area.\n")
	fmt.Fprintf(&b, "- Each of morning, afternoon and evening has between 1 and %d activities.\n", model.MaxActivitiesPerBlock)
	fmt.Fprintf(&b, "- Provide 1 to %d accommodation suggestions and 1 to %d packing list items.\n",
		model.MaxAccommodations, model.MaxPackingItems)
	b.WriteString("- Respect every maximum length below; shorten text rather than exceed it.\n")
	fmt.Fprintf(&b, "  names and titles: %d characters; addresses: %d; descriptions: %d; tips, notes, weather and advice: %d; "+
		"times, costs, durations, categories and cuisines: %d; useful phrases and packing items: %d.\n",
		model.MaxNameLen, model.MaxAddressLen, model.MaxDescriptionLen, model.MaxTipLen, model.MaxShortLen, model.MaxPhraseLen)
	b.WriteString("- Respond with a single JSON object matching the schema. No markdown, no commentary.\n")

	return Prompt{
		Instruction: b.String(),
		Schema:      Schema(),
	}
}

func writeLocale(b *strings.Builder, locale model.LocaleContext) {
	if locale.IsEmpty() {
		return
	}
	b.WriteString("\nLOCAL CONTEXT:\n")
	if locale.CountryName != "" {
		fmt.Fprintf(b, "- Country: %s\n", locale.CountryName)
	}
	if locale.Capital != "" {
		fmt.Fprintf(b, "- Capital: %s\n", locale.Capital)
	}
	if len(locale.Languages) > 0 {
		fmt.Fprintf(b, "- Languages: %s (put useful phrases in the first one)\n", strings.Join(locale.Languages, ", "))
	}
	if len(locale.Currencies) > 0 {
		fmt.Fprintf(b, "- Currency: %s (quote prices in it)\n", strings.Join(locale.Currencies, ", "))
	}
	if locale.Timezone != "" {
		fmt.Fprintf(b, "- Timezone: %s\n", locale.Timezone)
	}
}

func sortedInterests(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Schema describes the JSON document the endpoint must return
func Schema() string {
	name := fmt.Sprintf("string, max %d chars", model.MaxNameLen)
	short := fmt.Sprintf("string, max %d chars", model.MaxShortLen)
	addr := fmt.Sprintf("string, max %d chars", model.MaxAddressLen)
	tip := fmt.Sprintf("string, max %d chars", model.MaxTipLen)
	desc := fmt.Sprintf("string, max %d chars", model.MaxDescriptionLen)
	phrase := fmt.Sprintf("string, max %d chars", model.MaxPhraseLen)

	activity := fmt.Sprintf(`{"name": "<%s>", "category": "<%s>", "address": "<%s>", "coordinates": {"lat": <number>, "lng": <number>}, "duration": "<%s>", "cost": "<%s>", "description": "<%s>", "tips": "<optional %s>"}`,
		name, short, addr, short, short, desc, tip)
	meal := fmt.Sprintf(`{"time": "<%s>", "name": "<%s>", "cuisine": "<%s>", "average_cost": "<%s>", "address": "<%s>", "description": "<optional %s>"}`,
		short, name, short, short, addr, desc)
	block := fmt.Sprintf(`{"time": "<%s>", "activities": [%s]}`, short, activity)

	return fmt.Sprintf(`{
  "trip_summary": {"destination": "<%s>", "duration_days": <integer>, "travelers": "<%s>", "total_estimated_cost": "<%s>", "best_season": "<%s>", "weather_forecast": "<%s>", "start_date": "<optional YYYY-MM-DD>"},
  "daily_plans": [
    {"day": <integer starting at 1>, "title": "<%s>",
     "morning": %s,
     "lunch": %s,
     "afternoon": %s,
     "evening": %s,
     "dinner": %s,
     "daily_tips": {"weather": "<%s>", "clothing": "<%s>", "estimated_daily_budget": "<%s>", "important_notes": "<optional %s>"},
     "transportation": {"getting_around": "<%s>", "estimated_cost": "<optional %s>"}}
  ],
  "accommodation_suggestions": [{"name": "<%s>", "type": "<%s>", "location": "<%s>", "price_range": "<%s>", "why_recommended": "<%s>"}],
  "general_tips": {"local_customs": "<%s>", "safety": "<%s>", "money": "<%s>", "emergency_contacts": "<optional %s>", "useful_phrases": ["<%s>"]},
  "packing_list": ["<%s>"]
}`,
		name, short, short, tip, tip,
		name, block, meal, block, block, meal,
		tip, tip, short, tip,
		tip, short,
		name, short, addr, short, tip,
		tip, tip, tip, tip, phrase,
		phrase)
}
