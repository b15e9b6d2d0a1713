package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/repository"
)

// memStore is an in-memory stand-in for Postgres. Seat uniqueness is
// enforced under one mutex and writes made inside WithinTx are discarded
// when fn fails, which is what the real unique index and transaction give.
type memStore struct {
	mu         sync.Mutex
	nextOrder  int64
	nextTicket int64
	orders     map[int64]domain.Order
	tickets    map[int64]domain.Ticket
	seats      map[seatKey]int64
	flights    map[int64][2]int // flight id -> rows, seats in row
}

type seatKey struct {
	flightID  int64
	row, seat int
}

type memTxKey struct{}

type memTx struct {
	orders  []int64
	tickets []int64
}

func newMemStore() *memStore {
	return &memStore{
		orders:  map[int64]domain.Order{},
		tickets: map[int64]domain.Ticket{},
		seats:   map[seatKey]int64{},
		flights: map[int64][2]int{},
	}
}

func (s *memStore) addFlight(id int64, rows, seatsInRow int) {
	s.flights[id] = [2]int{rows, seatsInRow}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		return fn(ctx)
	}
	tx := &memTx{}
	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		s.rollback(tx)
		return err
	}
	return nil
}

func (s *memStore) rollback(tx *memTx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range tx.tickets {
		t := s.tickets[id]
		delete(s.seats, seatKey{t.FlightID, t.Row, t.Seat})
		delete(s.tickets, id)
	}
	for _, id := range tx.orders {
		delete(s.orders, id)
	}
}

func track(ctx context.Context, fn func(tx *memTx)) {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		fn(tx)
	}
}

func (s *memStore) ticketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type memOrders struct{ s *memStore }

func (r memOrders) Create(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	r.s.nextOrder++
	order.ID = r.s.nextOrder
	order.CreatedAt = time.Now().UTC()
	r.s.orders[order.ID] = domain.Order{ID: order.ID, UserID: order.UserID, CreatedAt: order.CreatedAt}
	r.s.mu.Unlock()
	track(ctx, func(tx *memTx) { tx.orders = append(tx.orders, order.ID) })
	return nil
}

func (r memOrders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "order", ID: id}
	}
	return &o, nil
}

func (r memOrders) List(_ context.Context, _ repository.ListParams) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memOrders) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return &domain.NotFoundError{Entity: "order", ID: id}
	}
	delete(r.s.orders, id)
	for tid, t := range r.s.tickets {
		if t.OrderID == id {
			delete(r.s.seats, seatKey{t.FlightID, t.Row, t.Seat})
			delete(r.s.tickets, tid)
		}
	}
	return nil
}

type memTickets struct{ s *memStore }

func (r memTickets) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.s.mu.Lock()
	dims, ok := r.s.flights[ticket.FlightID]
	if !ok {
		r.s.mu.Unlock()
		return &domain.NotFoundError{Entity: "flight", ID: ticket.FlightID}
	}
	if err := domain.ValidateSeatRow(ticket.Seat, ticket.Row, dims[1], dims[0]); err != nil {
		r.s.mu.Unlock()
		return err
	}
	key := seatKey{ticket.FlightID, ticket.Row, ticket.Seat}
	if _, taken := r.s.seats[key]; taken {
		r.s.mu.Unlock()
		return &domain.ConflictError{Entity: "ticket", Fields: []string{"flight", "row", "seat"}, Reason: "seat is already taken"}
	}
	r.s.nextTicket++
	ticket.ID = r.s.nextTicket
	r.s.seats[key] = ticket.ID
	r.s.tickets[ticket.ID] = *ticket
	r.s.mu.Unlock()
	track(ctx, func(tx *memTx) { tx.tickets = append(tx.tickets, ticket.ID) })
	return nil
}

func (r memTickets) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "ticket", ID: id}
	}
	return &t, nil
}

func (r memTickets) List(_ context.Context, _ repository.ListParams) ([]domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Ticket, 0, len(r.s.tickets))
	for _, t := range r.s.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memTickets) ListByOrders(_ context.Context, orderIDs []int64) ([]domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[int64]bool, len(orderIDs))
	for _, id := range orderIDs {
		want[id] = true
	}
	var out []domain.Ticket
	for _, t := range r.s.tickets {
		if want[t.OrderID] {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memTickets) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return &domain.NotFoundError{Entity: "ticket", ID: id}
	}
	delete(r.s.seats, seatKey{t.FlightID, t.Row, t.Seat})
	delete(r.s.tickets, id)
	return nil
}

func (r memTickets) DueReminders(context.Context, time.Time, time.Time) ([]domain.TicketReminder, error) {
	return nil, nil
}

func (r memTickets) MarkNotified(context.Context, []int64) (int64, error) {
	return 0, nil
}
