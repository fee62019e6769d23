package model

// Upper bounds for free-text itinerary fields. The prompt advertises them and the
// validate tags below enforce the same numbers.
const (
	MaxNameLen        = 80
	MaxShortLen       = 60
	MaxAddressLen     = 150
	MaxTipLen         = 200
	MaxDescriptionLen = 300
	MaxPhraseLen      = 80

	MaxActivitiesPerBlock = 6
	MaxAccommodations     = 5
	MaxPackingItems       = 30
	MaxUsefulPhrases      = 10
)

// Itinerary is the canonical day-by-day plan
type Itinerary struct {
	TripSummary              TripSummary     `json:"trip_summary"`
	DailyPlans               []DayPlan       `json:"daily_plans" validate:"required,min=1,dive"`
	AccommodationSuggestions []Accommodation `json:"accommodation_suggestions" validate:"required,min=1,max=5,dive"`
	GeneralTips              GeneralTips     `json:"general_tips"`
	PackingList              []string        `json:"packing_list" validate:"required,min=1,max=30,dive,required,max=80"`
}

// TripSummary is the header of an itinerary
type TripSummary struct {
	Destination     string `json:"destination" validate:"required,max=80"`
	DurationDays    int    `json:"duration_days" validate:"min=1"`
	Travelers       string `json:"travelers" validate:"required,max=60"`
	EstimatedCost   string `json:"total_estimated_cost" validate:"required,max=60"`
	BestSeason      string `json:"best_season" validate:"required,max=200"`
	WeatherForecast string `json:"weather_forecast" validate:"required,max=200"`
	StartDate       string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// DayPlan is one day of an itinerary
type DayPlan struct {
	Day            int                `json:"day" validate:"min=1"`
	Title          string             `json:"title" validate:"required,max=80"`
	Morning        TimeBlock          `json:"morning"`
	Lunch          MealRecommendation `json:"lunch"`
	Afternoon      TimeBlock          `json:"afternoon"`
	Evening        TimeBlock          `json:"evening"`
	Dinner         MealRecommendation `json:"dinner"`
	DailyTips      DailyTips          `json:"daily_tips"`
	Transportation Transportation     `json:"transportation"`
}

// TimeBlock groups the activities of a part of the day
type TimeBlock struct {
	Time       string     `json:"time" validate:"required,max=60"`
	Activities []Activity `json:"activities" validate:"required,min=1,max=6,dive"`
}

// Activity is a single visit or experience
type Activity struct {
	Name        string      `json:"name" validate:"required,max=80"`
	Category    string      `json:"category" validate:"required,max=60"`
	Address     string      `json:"address" validate:"required,max=150"`
	Coordinates Coordinates `json:"coordinates"`
	Duration    string      `json:"duration" validate:"required,max=60"`
	Cost        string      `json:"cost" validate:"required,max=60"`
	Description string      `json:"description" validate:"required,max=300"`
	Tips        string      `json:"tips,omitempty" validate:"omitempty,max=200"`
}

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// MealRecommendation is a lunch or dinner venue
type MealRecommendation struct {
	Time        string `json:"time" validate:"required,max=60"`
	Name        string `json:"name" validate:"required,max=80"`
	Cuisine     string `json:"cuisine" validate:"required,max=60"`
	AverageCost string `json:"average_cost" validate:"required,max=60"`
	Address     string `json:"address" validate:"required,max=150"`
	Description string `json:"description,omitempty" validate:"omitempty,max=300"`
}

// DailyTips holds practical notes for a day
type DailyTips struct {
	Weather              string `json:"weather" validate:"required,max=200"`
	Clothing             string `json:"clothing" validate:"required,max=200"`
	EstimatedDailyBudget string `json:"estimated_daily_budget" validate:"required,max=60"`
	ImportantNotes       string `json:"important_notes,omitempty" validate:"omitempty,max=200"`
}

// Transportation describes how to move around during a day
type Transportation struct {
	GettingAround string `json:"getting_around" validate:"required,max=200"`
	EstimatedCost string `json:"estimated_cost,omitempty" validate:"omitempty,max=60"`
}

// Accommodation is a suggested place to stay
type Accommodation struct {
	Name           string `json:"name" validate:"required,max=80"`
	Type           string `json:"type" validate:"required,max=60"`
	Location       string `json:"location" validate:"required,max=150"`
	PriceRange     string `json:"price_range" validate:"required,max=60"`
	WhyRecommended string `json:"why_recommended" validate:"required,max=200"`
}

// GeneralTips holds trip-wide advice
type GeneralTips struct {
	LocalCustoms      string   `json:"local_customs" validate:"required,max=200"`
	Safety            string   `json:"safety" validate:"required,max=200"`
	Money             string   `json:"money" validate:"required,max=200"`
	EmergencyContacts string   `json:"emergency_contacts,omitempty" validate:"omitempty,max=200"`
	UsefulPhrases     []string `json:"useful_phrases" validate:"max=10,dive,required,max=80"`
}

// Activities returns every activity of the day in visiting order
func (d DayPlan) Activities() []Activity {
	out := make([]Activity, 0, len(d.Morning.Activities)+len(d.Afternoon.Activities)+len(d.Evening.Activities))
	out = append(out, d.Morning.Activities...)
	out = append(out, d.Afternoon.Activities...)
	out = append(out, d.Evening.Activities...)
	return out
}
