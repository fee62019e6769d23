package model

// GenerateResponse represents the response of a generation request
type GenerateResponse struct {
	TripID         int64     `json:"trip_id"`
	Source         string    `json:"source"`
	FallbackReason string    `json:"fallback_reason,omitempty"`
	Stages         []string  `json:"stages"`
	Itinerary      Itinerary `json:"itinerary"`
}

// SaveTripRequest is the body of a promote call
type SaveTripRequest struct {
	DisplayName string `json:"display_name"`
}

// TripListResponse represents a page of trips
type TripListResponse struct {
	Trips  []Trip `json:"trips"`
	Count  int    `json:"count"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
