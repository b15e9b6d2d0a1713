package domain

import "time"

// Order is the unit of purchase: either all of its tickets persist or none do.
type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

// TicketSpec is one requested seat inside an order request.
type TicketSpec struct {
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight_id"`
}

type User struct {
	ID    int64
	Email string
}
