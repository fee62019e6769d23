// Package geo holds the fixed destination table shared by enrichment, the
// fallback synthesizer and response validation.
package geo

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	kmPerDegree = 111.32

	// DefaultRadiusKm is how far from a city's anchor generated venues may lie.
	DefaultRadiusKm = 60.0
)

// Place is a known destination
type Place struct {
	Name    string
	Country string
	Lat     float64
	Lng     float64
}

// Box is a lat/lng bounding box
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Globe accepts every valid coordinate
var Globe = Box{MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180}

// Contains reports whether the point lies inside the box, edges included
func (b Box) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

type entry struct {
	place   Place
	aliases []string
}

var destinations = []entry{
	{Place{"Istanbul", "Turkey", 41.0082, 28.9784}, []string{"constantinople"}},
	{Place{"Ankara", "Turkey", 39.9334, 32.8597}, nil},
	{Place{"Izmir", "Turkey", 38.4237, 27.1428}, nil},
	{Place{"Antalya", "Turkey", 36.8969, 30.7133}, nil},
	{Place{"Cappadocia", "Turkey", 38.6431, 34.8289}, []string{"kapadokya", "goreme"}},
	{Place{"Paris", "France", 48.8566, 2.3522}, nil},
	{Place{"Nice", "France", 43.7102, 7.2620}, nil},
	{Place{"London", "United Kingdom", 51.5074, -0.1278}, nil},
	{Place{"Edinburgh", "United Kingdom", 55.9533, -3.1883}, nil},
	{Place{"Rome", "Italy", 41.9028, 12.4964}, []string{"roma"}},
	{Place{"Florence", "Italy", 43.7696, 11.2558}, []string{"firenze"}},
	{Place{"Venice", "Italy", 45.4408, 12.3155}, []string{"venezia"}},
	{Place{"Milan", "Italy", 45.4642, 9.1900}, []string{"milano"}},
	{Place{"Barcelona", "Spain", 41.3851, 2.1734}, nil},
	{Place{"Madrid", "Spain", 40.4168, -3.7038}, nil},
	{Place{"Lisbon", "Portugal", 38.7223, -9.1393}, []string{"lisboa"}},
	{Place{"Berlin", "Germany", 52.5200, 13.4050}, nil},
	{Place{"Munich", "Germany", 48.1351, 11.5820}, []string{"munchen"}},
	{Place{"Amsterdam", "Netherlands", 52.3676, 4.9041}, nil},
	{Place{"Vienna", "Austria", 48.2082, 16.3738}, []string{"wien"}},
	{Place{"Prague", "Czechia", 50.0755, 14.4378}, []string{"praha"}},
	{Place{"Budapest", "Hungary", 47.4979, 19.0402}, nil},
	{Place{"Athens", "Greece", 37.9838, 23.7275}, []string{"athina"}},
	{Place{"Moscow", "Russia", 55.7558, 37.6173}, []string{"moskva"}},
	{Place{"Saint Petersburg", "Russia", 59.9311, 30.3609}, []string{"st petersburg", "st. petersburg"}},
	{Place{"Dubai", "United Arab Emirates", 25.2048, 55.2708}, nil},
	{Place{"Cairo", "Egypt", 30.0444, 31.2357}, nil},
	{Place{"Marrakech", "Morocco", 31.6295, -7.9811}, []string{"marrakesh"}},
	{Place{"Tokyo", "Japan", 35.6762, 139.6503}, nil},
	{Place{"Kyoto", "Japan", 35.0116, 135.7681}, nil},
	{Place{"Seoul", "South Korea", 37.5665, 126.9780}, nil},
	{Place{"Bangkok", "Thailand", 13.7563, 100.5018}, nil},
	{Place{"Singapore", "Singapore", 1.3521, 103.8198}, nil},
	{Place{"Bali", "Indonesia", -8.3405, 115.0920}, nil},
	{Place{"Sydney", "Australia", -33.8688, 151.2093}, nil},
	{Place{"New York", "United States", 40.7128, -74.0060}, []string{"new york city", "nyc"}},
	{Place{"San Francisco", "United States", 37.7749, -122.4194}, nil},
	{Place{"Rio de Janeiro", "Brazil", -22.9068, -43.1729}, []string{"rio"}},
	{Place{"Mexico City", "Mexico", 19.4326, -99.1332}, []string{"ciudad de mexico"}},
}

var index = buildIndex()

func buildIndex() map[string]Place {
	idx := make(map[string]Place, len(destinations)*2)
	for _, e := range destinations {
		idx[Normalize(e.place.Name)] = e.place
		for _, a := range e.aliases {
			idx[Normalize(a)] = e.place
		}
	}
	return idx
}

// Normalize folds case and diacritics and keeps only the leading city token,
// so "İstanbul, Türkiye" and "istanbul" resolve to the same key.
func Normalize(destination string) string {
	city := destination
	if i := strings.IndexByte(city, ','); i >= 0 {
		city = city[:i]
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, city)
	if err != nil {
		folded = city
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Lookup resolves a destination against the fixed table
func Lookup(destination string) (Place, bool) {
	p, ok := index[Normalize(destination)]
	return p, ok
}

// BoundsFor returns the plausible area for venues at destination. Unknown
// destinations only get the globe-wide range check.
func BoundsFor(destination string) Box {
	p, ok := Lookup(destination)
	if !ok {
		return Globe
	}
	return BoxAround(p.Lat, p.Lng, DefaultRadiusKm)
}

// BoxAround builds a box of radiusKm around a point
func BoxAround(lat, lng, radiusKm float64) Box {
	dLat := radiusKm / kmPerDegree
	dLng := radiusKm / (kmPerDegree * math.Cos(lat*math.Pi/180))
	return Box{
		MinLat: math.Max(-90, lat-dLat),
		MaxLat: math.Min(90, lat+dLat),
		MinLng: math.Max(-180, lng-dLng),
		MaxLng: math.Min(180, lng+dLng),
	}
}

// AnchorFor returns the reference point for a destination. Unknown
// destinations get a stable point derived from the name.
func AnchorFor(destination string) (lat, lng float64) {
	if p, ok := Lookup(destination); ok {
		return p.Lat, p.Lng
	}
	h := fnv.New32a()
	h.Write([]byte(Normalize(destination)))
	sum := h.Sum32()
	lat = -40 + float64(sum%9000)/100
	lng = -170 + float64((sum/9000)%34000)/100
	return lat, lng
}
