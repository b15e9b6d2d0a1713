package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/kafka"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value any) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestService(store *memStore, opts ...OrderServiceOption) *OrderService {
	return NewOrderService(memOrders{store}, memTickets{store}, store, opts...)
}

func TestCreateOrder_Success(t *testing.T) {
	store := newMemStore()
	store.addFlight(1, 30, 6)

	producer := new(MockProducer)
	producer.On("Publish", mock.Anything, "air.orders", "1", mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == kafka.EventOrderCreated && e.OrderID == 1 && len(e.Tickets) == 2
	})).Return(nil)

	svc := newTestService(store, WithEvents(producer, "air.orders"))
	order, err := svc.CreateOrder(context.Background(), 7, []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: 1},
		{Row: 1, Seat: 2, FlightID: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, int64(7), order.UserID)
	require.Len(t, order.Tickets, 2)
	assert.Equal(t, order.ID, order.Tickets[0].OrderID)
	assert.Equal(t, 2, store.ticketCount())
	producer.AssertExpectations(t)
}

func TestCreateOrder_InvalidSpecPersistsNothing(t *testing.T) {
	store := newMemStore()
	store.addFlight(1, 30, 6)
	producer := new(MockProducer)

	svc := newTestService(store, WithEvents(producer, "air.orders"))
	_, err := svc.CreateOrder(context.Background(), 7, []domain.TicketSpec{
		{Row: 5, Seat: 3, FlightID: 1},
		{Row: 31, Seat: 7, FlightID: 1},
	})

	require.Error(t, err)
	var specErr *domain.TicketSpecError
	require.True(t, errors.As(err, &specErr))
	assert.Equal(t, 1, specErr.Index)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("row"))
	assert.True(t, verr.Has("seat"))

	assert.Zero(t, store.ticketCount())
	assert.Zero(t, store.orderCount())
	producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_DuplicateSeatInsideOrder(t *testing.T) {
	store := newMemStore()
	store.addFlight(1, 30, 6)
	svc := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), 7, []domain.TicketSpec{
		{Row: 2, Seat: 2, FlightID: 1},
		{Row: 2, Seat: 2, FlightID: 1},
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, store.ticketCount())
	assert.Zero(t, store.orderCount())
}

func TestCreateOrder_UnknownFlight(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), 7, []domain.TicketSpec{{Row: 1, Seat: 1, FlightID: 99}})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, store.orderCount())
}

func TestCreateOrder_RejectsEmptyRequests(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.CreateOrder(context.Background(), 7, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateOrder(context.Background(), 0, []domain.TicketSpec{{Row: 1, Seat: 1, FlightID: 1}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateOrder_ConcurrentSameSeat(t *testing.T) {
	store := newMemStore()
	store.addFlight(1, 30, 6)
	svc := newTestService(store)

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			_, err := svc.CreateOrder(context.Background(), user, []domain.TicketSpec{{Row: 4, Seat: 4, FlightID: 1}})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, store.ticketCount())
	assert.Equal(t, 1, store.orderCount())
}

func TestCreateOrder_PublishFailureKeepsOrder(t *testing.T) {
	store := newMemStore()
	store.addFlight(1, 30, 6)
	producer := new(MockProducer)
	producer.On("Publish", mock.Anything, "air.orders", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := newTestService(store, WithEvents(producer, "air.orders"))
	order, err := svc.CreateOrder(context.Background(), 7, []domain.TicketSpec{{Row: 1, Seat: 1, FlightID: 1}})

	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, 1, store.ticketCount())
}

func TestListOrders_AttachesTickets(t *testing.T) {
	store := newMemStore()
	store.addFlight(1, 30, 6)
	svc := newTestService(store)

	first, err := svc.CreateOrder(context.Background(), 7, []domain.TicketSpec{{Row: 1, Seat: 1, FlightID: 1}})
	require.NoError(t, err)
	second, err := svc.CreateOrder(context.Background(), 7, []domain.TicketSpec{
		{Row: 2, Seat: 1, FlightID: 1},
		{Row: 2, Seat: 2, FlightID: 1},
	})
	require.NoError(t, err)

	orders, err := svc.ListOrders(context.Background(), repository.ListParams{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Len(t, orders[0].Tickets, 2)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Len(t, orders[1].Tickets, 1)
}

func TestDeleteOrder_CascadesTickets(t *testing.T) {
	store := newMemStore()
	store.addFlight(1, 30, 6)
	producer := new(MockProducer)
	producer.On("Publish", mock.Anything, "air.orders", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(store, WithEvents(producer, "air.orders"))
	order, err := svc.CreateOrder(context.Background(), 7, []domain.TicketSpec{{Row: 1, Seat: 1, FlightID: 1}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(context.Background(), order.ID))
	assert.Zero(t, store.ticketCount())

	// the freed seat can be booked again
	_, err = svc.CreateOrder(context.Background(), 8, []domain.TicketSpec{{Row: 1, Seat: 1, FlightID: 1}})
	assert.NoError(t, err)
	producer.AssertNumberOfCalls(t, "Publish", 3)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	svc := newTestService(newMemStore())
	err := svc.DeleteOrder(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTicket_Validation(t *testing.T) {
	store := newMemStore()
	store.addFlight(1, 30, 6)
	svc := newTestService(store)

	_, err := svc.CreateTicket(context.Background(), CreateTicketInput{Row: 5, Seat: 7, FlightID: 1, OrderID: 1})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "seat must be in range of airplane seats", verr.Fields["seat"])
	assert.False(t, verr.Has("row"))
}
