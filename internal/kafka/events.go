package kafka

import "time"

const (
	EventOrderCreated   = "order_created"
	EventOrderDeleted   = "order_deleted"
	EventTicketReminder = "ticket_reminder"
)

type OrderTicket struct {
	TicketID int64 `json:"ticket_id"`
	FlightID int64 `json:"flight_id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}

type OrderEvent struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	OrderID   int64         `json:"order_id"`
	UserID    int64         `json:"user_id"`
	CreatedAt time.Time     `json:"created_at"`
	Tickets   []OrderTicket `json:"tickets,omitempty"`
}

// NotificationEvent is an outbound message handed to the email consumer.
type NotificationEvent struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	TicketID int64  `json:"ticket_id"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}
