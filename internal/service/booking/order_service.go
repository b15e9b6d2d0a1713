package booking

import (
	"context"
	"errors"
	"strconv"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/kafka"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, userID int64, specs []domain.TicketSpec) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, params repository.ListParams) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error)
	GetTicket(ctx context.Context, id int64) (*domain.Ticket, error)
	ListTickets(ctx context.Context, params repository.ListParams) ([]domain.Ticket, error)
	DeleteTicket(ctx context.Context, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type CreateTicketInput struct {
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight"`
	OrderID  int64 `json:"order"`
}

type OrderService struct {
	orders   repository.OrderRepository
	tickets  repository.TicketRepository
	tx       repository.Transactor
	producer Producer
	topic    string
}

type OrderServiceOption func(*OrderService)

// WithEvents publishes order lifecycle events to topic after commit.
func WithEvents(producer Producer, topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	tickets repository.TicketRepository,
	tx repository.Transactor,
	opts ...OrderServiceOption,
) *OrderService {
	s := &OrderService{orders: orders, tickets: tickets, tx: tx}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder creates the order and all of its tickets in one transaction.
// Tickets are created in the given order and the first failure aborts the
// whole order; the returned error is a *domain.TicketSpecError naming the
// failing spec. Nothing is persisted unless every ticket succeeds.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, specs []domain.TicketSpec) (*domain.Order, error) {
	if userID <= 0 {
		return nil, domain.NewValidationError("order", "user", "authenticated user is required")
	}
	if len(specs) == 0 {
		return nil, domain.NewValidationError("order", "tickets", "at least one ticket is required")
	}

	var order *domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o := &domain.Order{UserID: userID}
		if err := s.orders.Create(ctx, o); err != nil {
			return err
		}

		o.Tickets = make([]domain.Ticket, 0, len(specs))
		for i, spec := range specs {
			t := domain.Ticket{Row: spec.Row, Seat: spec.Seat, FlightID: spec.FlightID, OrderID: o.ID}
			if err := s.tickets.Create(ctx, &t); err != nil {
				return &domain.TicketSpecError{Index: i, Err: err}
			}
			o.Tickets = append(o.Tickets, t)
		}
		order = o
		return nil
	})
	if err != nil {
		logOrderFailure(userID, err)
		return nil, err
	}

	log.Info().Int64("order_id", order.ID).Int64("user_id", userID).Int("tickets", len(order.Tickets)).Msg("order created")
	s.publish(ctx, kafka.EventOrderCreated, order)
	return order, nil
}

func logOrderFailure(userID int64, err error) {
	ev := log.Warn()
	if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrConflict) && !errors.Is(err, domain.ErrNotFound) {
		ev = log.Error()
	}
	ev.Err(err).Int64("user_id", userID).Msg("order rejected")
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.ListByOrders(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Tickets = tickets
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, params repository.ListParams) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Tickets = make([]domain.Ticket, 0)
	}
	tickets, err := s.tickets.ListByOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if i, ok := index[t.OrderID]; ok {
			orders[i].Tickets = append(orders[i].Tickets, t)
		}
	}
	return orders, nil
}

// DeleteOrder removes the order and, by cascade, its tickets.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, kafka.EventOrderDeleted, order)
	return nil
}

// CreateTicket adds a single ticket to an existing order. It goes through
// the same validated persistence path as CreateOrder.
func (s *OrderService) CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error) {
	t := &domain.Ticket{Row: input.Row, Seat: input.Seat, FlightID: input.FlightID, OrderID: input.OrderID}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *OrderService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *OrderService) ListTickets(ctx context.Context, params repository.ListParams) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, params)
}

func (s *OrderService) DeleteTicket(ctx context.Context, id int64) error {
	return s.tickets.Delete(ctx, id)
}

// publish never fails the caller: the order is already committed.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.OrderEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt,
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.OrderTicket{TicketID: t.ID, FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}
	if err := s.producer.Publish(ctx, s.topic, strconv.FormatInt(order.ID, 10), event); err != nil {
		log.Warn().Err(err).Int64("order_id", order.ID).Str("event", eventType).Msg("failed to publish order event")
	}
}

var _ OrderUseCase = (*OrderService)(nil)
