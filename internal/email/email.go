package email

import (
	"context"
	"errors"

	"github.com/Domenick1991/airservice/internal/kafka"
	"github.com/rs/zerolog/log"
)

// Sender delivers notification events. Delivery through an email provider
// is outside this service; messages are logged.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.NotificationEvent) error {
	if event.Email == "" {
		return errors.New("notification without recipient")
	}
	log.Info().
		Str("to", event.Email).
		Str("type", event.Type).
		Int64("ticket_id", event.TicketID).
		Str("subject", event.Subject).
		Msg("send email")
	return nil
}
