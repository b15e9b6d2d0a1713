package domain

import "math"

const kmPerNauticalMile = 1.852

// Route connects two airports. Source and destination may be the same airport.
type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      int

	SourceCity      string
	DestinationCity string
}

// DistanceInNM converts the distance in kilometers to nautical miles,
// rounding half to even.
func (r *Route) DistanceInNM() int {
	return int(math.RoundToEven(float64(r.Distance) / kmPerNauticalMile))
}

func (r *Route) Validate() error {
	verr := &ValidationError{Entity: "route", Fields: map[string]string{}}
	if r.SourceID <= 0 {
		verr.Fields["source"] = "source airport is required"
	}
	if r.DestinationID <= 0 {
		verr.Fields["destination"] = "destination airport is required"
	}
	if r.Distance < 1 {
		verr.Fields["distance"] = "distance must be a positive integer"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
