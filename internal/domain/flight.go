package domain

import (
	"fmt"
	"time"
)

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time

	// TicketsAvailable is derived per query and never persisted.
	TicketsAvailable int
	AirplaneName     string
	Capacity         int
}

// FlightTime is the scheduled duration formatted as "H h M min".
func (f *Flight) FlightTime() string {
	d := f.ArrivalTime.Sub(f.DepartureTime)
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%d h %d min", hours, minutes)
}

// ValidateSchedule rejects a flight that arrives before it departs.
func ValidateSchedule(departure, arrival time.Time) error {
	if arrival.Before(departure) {
		return NewValidationError("flight", "arrival_time", "must be higher than departure_time")
	}
	return nil
}

func (f *Flight) Validate() error {
	verr := &ValidationError{Entity: "flight", Fields: map[string]string{}}
	if f.RouteID <= 0 {
		verr.Fields["route"] = "route is required"
	}
	if f.AirplaneID <= 0 {
		verr.Fields["airplane"] = "airplane is required"
	}
	if f.DepartureTime.IsZero() {
		verr.Fields["departure_time"] = "departure time is required"
	}
	if f.ArrivalTime.IsZero() {
		verr.Fields["arrival_time"] = "arrival time is required"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return ValidateSchedule(f.DepartureTime, f.ArrivalTime)
}
