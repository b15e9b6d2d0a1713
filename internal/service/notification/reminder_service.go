package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/kafka"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const sweepLockName = "ticket-reminders"

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// Locker keeps concurrent worker instances from sweeping at the same time.
type Locker interface {
	AcquireLock(ctx context.Context, name, token string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, token string) error
}

type ReminderService struct {
	tickets  repository.TicketRepository
	tx       repository.Transactor
	producer Producer
	topic    string
	window   time.Duration
	locker   Locker
	lockTTL  time.Duration
	now      func() time.Time
}

type ReminderServiceOption func(*ReminderService)

func WithLocker(locker Locker, ttl time.Duration) ReminderServiceOption {
	return func(s *ReminderService) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

func WithClock(now func() time.Time) ReminderServiceOption {
	return func(s *ReminderService) {
		s.now = now
	}
}

func NewReminderService(
	tickets repository.TicketRepository,
	tx repository.Transactor,
	producer Producer,
	topic string,
	window time.Duration,
	opts ...ReminderServiceOption,
) *ReminderService {
	s := &ReminderService{
		tickets:  tickets,
		tx:       tx,
		producer: producer,
		topic:    topic,
		window:   window,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendReminders notifies holders of tickets whose flight departs within the
// reminder window and flags those tickets as notified in one bulk update.
// Tickets whose message could not be queued stay unflagged for the next
// sweep. It returns the number of reminders sent.
func (s *ReminderService) SendReminders(ctx context.Context) (int, error) {
	if s.locker != nil {
		token := uuid.NewString()
		ok, err := s.locker.AcquireLock(ctx, sweepLockName, token, s.lockTTL)
		if err != nil {
			return 0, fmt.Errorf("acquire sweep lock: %w", err)
		}
		if !ok {
			log.Debug().Msg("reminder sweep already running elsewhere")
			return 0, nil
		}
		defer func() {
			if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), sweepLockName, token); err != nil {
				log.Warn().Err(err).Msg("release sweep lock")
			}
		}()
	}

	now := s.now()
	due, err := s.tickets.DueReminders(ctx, now, now.Add(s.window))
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	sent := make([]int64, 0, len(due))
	for _, rm := range due {
		event := reminderEvent(rm)
		if err := s.producer.Publish(ctx, s.topic, event.Email, event); err != nil {
			log.Error().Err(err).Int64("ticket_id", rm.TicketID).Str("email", rm.Email).Msg("failed to queue ticket reminder")
			continue
		}
		sent = append(sent, rm.TicketID)
	}
	if len(sent) == 0 {
		return 0, nil
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.tickets.MarkNotified(ctx, sent)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("mark tickets notified: %w", err)
	}

	log.Info().Ints64("ticket_ids", sent).Msg("sent ticket reminders")
	return len(sent), nil
}

func reminderEvent(rm domain.TicketReminder) kafka.NotificationEvent {
	return kafka.NotificationEvent{
		ID:       uuid.NewString(),
		Type:     kafka.EventTicketReminder,
		TicketID: rm.TicketID,
		Email:    rm.Email,
		Subject:  fmt.Sprintf("Reminder about your ticket From %s to %s", rm.SourceCity, rm.DestinationCity),
		Body: fmt.Sprintf("Your plane takes off at %s. Ticket number: %d.\nRow: %d, seat: %d. Airplane: %s.",
			rm.DepartureTime.Format("2006-01-02 15:04"), rm.TicketID, rm.Row, rm.Seat, rm.AirplaneName),
	}
}
