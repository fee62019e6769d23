package fallback

import "github.com/alexivanou/tripsynth-api/internal/model"

type template struct {
	name        string
	category    string
	duration    string
	description string // %s is replaced with the destination
}

type theme struct {
	title     string
	keywords  []string
	templates []template
}

const defaultTheme = "sightseeing"

var themes = map[string]theme{
	"history": {
		title:    "History & Heritage",
		keywords: []string{"history", "historic", "heritage", "ancient", "castle"},
		templates: []template{
			{"Old Town Heritage Walk", "History", "2-3 hours", "Guided walk through the oldest streets of %s, covering landmarks and local legends."},
			{"City History Museum Visit", "History", "2 hours", "An overview of how %s grew from its first settlement into the modern city."},
			{"Fortress and Ramparts Tour", "History", "2 hours", "Walk the old defensive walls of %s and learn how the city was protected."},
		},
	},
	"art": {
		title:    "Art & Museums",
		keywords: []string{"art", "museum", "gallery", "painting"},
		templates: []template{
			{"Fine Arts Gallery Visit", "Art", "2 hours", "Highlights of the main fine arts collection of %s with time for a favourite room."},
			{"Street Art and Studio Tour", "Art", "2 hours", "Murals, small studios and independent galleries across the creative quarter of %s."},
			{"Contemporary Art Pavilion", "Art", "1-2 hours", "Rotating exhibitions by artists working in and around %s."},
		},
	},
	"food": {
		title:    "Food & Flavours",
		keywords: []string{"food", "cuisine", "gastronomy", "culinary", "wine", "coffee"},
		templates: []template{
			{"Morning Food Market Tour", "Food", "2 hours", "Taste seasonal produce and regional snacks at the busiest market in %s."},
			{"Regional Cooking Class", "Food", "3 hours", "Hands-on class preparing two classic dishes of %s with a local cook."},
			{"Neighbourhood Tasting Walk", "Food", "2-3 hours", "Short stops at bakeries, delis and tea houses that define eating in %s."},
		},
	},
	"nature": {
		title:    "Parks & Nature",
		keywords: []string{"nature", "park", "hiking", "outdoor", "garden", "beach"},
		templates: []template{
			{"Botanical Garden Stroll", "Nature", "2 hours", "Shaded paths and glasshouses with native plants of the %s region."},
			{"Scenic Hilltop Hike", "Nature", "3 hours", "Moderate trail to a viewpoint overlooking %s and its surroundings."},
			{"Lakeside Nature Reserve", "Nature", "2-3 hours", "Easy loop through wetlands and woodland on the edge of %s."},
		},
	},
	"shopping": {
		title:    "Markets & Shopping",
		keywords: []string{"shopping", "shop", "market", "fashion", "souvenir"},
		templates: []template{
			{"Artisan Crafts Quarter", "Shopping", "2 hours", "Workshops and small shops selling handmade goods typical of %s."},
			{"Design District Boutiques", "Shopping", "2 hours", "Independent fashion and design labels concentrated in one walkable area of %s."},
		},
	},
	"architecture": {
		title:    "Architecture",
		keywords: []string{"architecture", "building", "design"},
		templates: []template{
			{"Landmark Architecture Walk", "Architecture", "2 hours", "From historic facades to modern towers, the buildings that shape the skyline of %s."},
			{"Cathedral and Old Square Visit", "Architecture", "1-2 hours", "The main religious landmark of %s and the square that grew around it."},
		},
	},
	"adventure": {
		title:    "Active Adventures",
		keywords: []string{"adventure", "sport", "bike", "cycling", "kayak", "active"},
		templates: []template{
			{"Guided Bike Tour", "Adventure", "3 hours", "Cycle between the main sights of %s on quiet lanes and riverside paths."},
			{"Kayak and Boat Excursion", "Adventure", "3 hours", "See %s from the water with a guide and all equipment provided."},
		},
	},
	"relaxation": {
		title:    "Slow Travel",
		keywords: []string{"relax", "spa", "wellness", "slow"},
		templates: []template{
			{"Thermal Spa Afternoon", "Wellness", "3 hours", "Pools, saunas and a quiet lounge to recharge in %s."},
			{"Waterfront Promenade Walk", "Leisure", "1-2 hours", "Unhurried walk with cafe stops along the waterfront of %s."},
		},
	},
	"culture": {
		title:    "Local Culture",
		keywords: []string{"culture", "music", "tradition", "festival", "theatre"},
		templates: []template{
			{"Traditional Music Performance", "Culture", "2 hours", "An evening of the music and dance traditions of %s."},
			{"Folk Crafts Workshop", "Culture", "2 hours", "Learn a traditional craft of %s from a working artisan."},
		},
	},
	defaultTheme: {
		title: "City Highlights",
		templates: []template{
			{"Panoramic City Viewpoint", "Sightseeing", "1-2 hours", "The best overall view of %s, ideal for getting your bearings."},
			{"Main Square and Old Quarter", "Sightseeing", "2 hours", "The historic heart of %s with its cafes, monuments and street life."},
			{"Riverside Promenade Walk", "Sightseeing", "2 hours", "A relaxed walk linking several landmarks of %s."},
		},
	},
}

var eveningTemplates = map[model.TravelerGroup][]template{
	model.TravelerSolo: {
		{"Sunset Walking Tour", "Evening", "2 hours", "Small-group walk through %s at golden hour, a good way to meet other travelers."},
		{"Live Jazz Evening", "Evening", "2 hours", "Intimate music venue in %s with bar seating for single guests."},
	},
	model.TravelerCouple: {
		{"Sunset Viewpoint Terrace", "Evening", "1-2 hours", "Watch the sun set over %s from a quiet terrace."},
		{"Evening River Cruise", "Evening", "2 hours", "Slow cruise past the illuminated landmarks of %s."},
	},
	model.TravelerFamily: {
		{"Family Lantern Walk", "Evening", "1 hour", "Short, stroller-friendly evening walk through the lit-up centre of %s."},
		{"Puppet Theatre Show", "Evening", "1 hour", "Early-evening show for children, easy to follow without knowing the language of %s."},
	},
	model.TravelerFriends: {
		{"Rooftop Bar Crawl", "Nightlife", "3 hours", "Three rooftop venues with views over %s and space for groups."},
		{"Live Music Hall Night", "Nightlife", "3 hours", "Local bands and a lively crowd in one of the best-known venues of %s."},
	},
}

var lunchVenues = []string{"Market Hall Bistro", "Old Town Brasserie", "Garden Courtyard Cafe", "Riverside Canteen", "Corner Noodle Bar"}

var dinnerVenues = []string{"Harbour Grill House", "Vineyard Table", "Lantern Lane Kitchen", "Stone Oven Trattoria", "Courtyard Supper Club"}

var quarters = []string{"Old Town", "Riverside", "Market", "Cathedral", "Harbour", "University", "Garden"}

type tier struct {
	activityCost string
	mealCost     string
	dailyMin     int
	dailyMax     int
	transport    string
	stays        []model.Accommodation
}

var tiers = map[model.BudgetTier]tier{
	model.BudgetLow: {
		activityCost: "Free-$15",
		mealCost:     "$8-15 per person",
		dailyMin:     50,
		dailyMax:     80,
		transport:    "Walk and use day passes for public transport",
		stays: []model.Accommodation{
			{Name: "Central Backpackers Hostel", Type: "Hostel", PriceRange: "$20-40 per night"},
			{Name: "Old Quarter Guesthouse", Type: "Guesthouse", PriceRange: "$40-70 per night"},
		},
	},
	model.BudgetMedium: {
		activityCost: "$15-40",
		mealCost:     "$20-40 per person",
		dailyMin:     120,
		dailyMax:     200,
		transport:    "Public transport with the occasional taxi",
		stays: []model.Accommodation{
			{Name: "Courtyard Boutique Hotel", Type: "3-star hotel", PriceRange: "$90-150 per night"},
			{Name: "Riverside Apartments", Type: "Serviced apartment", PriceRange: "$110-170 per night"},
		},
	},
	model.BudgetHigh: {
		activityCost: "$40-120",
		mealCost:     "$60-150 per person",
		dailyMin:     300,
		dailyMax:     500,
		transport:    "Private transfers and taxis",
		stays: []model.Accommodation{
			{Name: "Grand Palace Hotel & Spa", Type: "5-star hotel", PriceRange: "$350-600 per night"},
			{Name: "Belvedere Luxury Suites", Type: "Luxury suites", PriceRange: "$450-800 per night"},
		},
	},
}

var groupNotes = map[model.TravelerGroup]struct {
	travelers string
	stayWhy   string
	tip       string
}{
	model.TravelerSolo:    {"1 traveler", "Sociable common areas and a safe, central location", "Share your daily plan with someone at home."},
	model.TravelerCouple:  {"2 travelers", "Quiet rooms and a romantic atmosphere", "Book dinner tables a day ahead for the best seats."},
	model.TravelerFamily:  {"Family with children", "Family rooms and easy access to parks", "Plan a rest break after lunch for younger children."},
	model.TravelerFriends: {"Group of friends", "Shared rooms and lively surroundings", "Split costs with a shared expenses app."},
}

var packingBase = []string{"Comfortable walking shoes", "Reusable water bottle", "Power adapter", "Phone charger", "Light rain jacket", "Travel documents"}
