package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexivanou/tripsynth-api/internal/model"
	ics "github.com/arran4/golang-ical"
)

const calendarProductID = "-//tripsynth//itinerary//EN"

// ExportCalendar renders a stored trip as an iCalendar document with one
// all-day event per itinerary day.
func (s *Service) ExportCalendar(ctx context.Context, tripID, ownerID int64) (string, error) {
	trip, err := s.GetTrip(ctx, tripID, ownerID)
	if err != nil {
		return "", err
	}

	var it model.Itinerary
	if err := json.Unmarshal(trip.PlanPayload, &it); err != nil {
		return "", fmt.Errorf("failed to decode stored itinerary: %w", err)
	}

	return buildCalendar(trip, it), nil
}

func buildCalendar(trip *model.Trip, it model.Itinerary) string {
	start := calendarStart(trip, it)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	name := trip.Destination
	if trip.DisplayName != nil {
		name = *trip.DisplayName
	}
	cal.SetXWRCalName(name)

	for _, day := range it.DailyPlans {
		date := start.AddDate(0, 0, day.Day-1)

		event := cal.AddEvent(fmt.Sprintf("trip-%d-day-%d@tripsynth", trip.ID, day.Day))
		event.SetDtStampTime(trip.UpdatedAt.UTC())
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetSummary(day.Title)
		event.SetDescription(describeDay(day))
		if acts := day.Activities(); len(acts) > 0 {
			event.SetLocation(acts[0].Address)
		}
	}

	return cal.Serialize()
}

// calendarStart uses the itinerary start date when present, otherwise the
// day after the trip was generated.
func calendarStart(trip *model.Trip, it model.Itinerary) time.Time {
	if t, err := time.Parse("2006-01-02", it.TripSummary.StartDate); err == nil {
		return t
	}
	c := trip.CreatedAt.UTC()
	return time.Date(c.Year(), c.Month(), c.Day()+1, 0, 0, 0, 0, time.UTC)
}

func describeDay(day model.DayPlan) string {
	var b strings.Builder
	block := func(label string, tb model.TimeBlock) {
		for _, a := range tb.Activities {
			fmt.Fprintf(&b, "%s (%s): %s, %s\n", label, tb.Time, a.Name, a.Address)
		}
	}
	block("Morning", day.Morning)
	fmt.Fprintf(&b, "Lunch (%s): %s\n", day.Lunch.Time, day.Lunch.Name)
	block("Afternoon", day.Afternoon)
	block("Evening", day.Evening)
	fmt.Fprintf(&b, "Dinner (%s): %s\n", day.Dinner.Time, day.Dinner.Name)
	return strings.TrimSpace(b.String())
}
