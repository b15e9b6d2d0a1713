package domain

import "time"

// Ticket claims one physical seat on one flight for one order.
type Ticket struct {
	ID               int64
	Row              int
	Seat             int
	FlightID         int64
	OrderID          int64
	NotificationSent bool
}

// ValidateSeatRow checks seat against [1, airplaneSeats] and row against
// [1, airplaneRows]. Both bounds are checked independently and every
// violation is reported in the returned error.
func ValidateSeatRow(seat, row, airplaneSeats, airplaneRows int) error {
	verr := &ValidationError{Entity: "ticket", Fields: map[string]string{}}
	if seat < 1 || seat > airplaneSeats {
		verr.Fields["seat"] = "seat must be in range of airplane seats"
	}
	if row < 1 || row > airplaneRows {
		verr.Fields["row"] = "row must be in range of airplane rows"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// TicketReminder is the read model the notification sweep works on.
type TicketReminder struct {
	TicketID        int64
	Row             int
	Seat            int
	FlightID        int64
	DepartureTime   time.Time
	AirplaneName    string
	SourceCity      string
	DestinationCity string
	Email           string
}
