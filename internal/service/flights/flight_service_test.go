package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	route.ID = 1
	return args.Error(0)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) List(ctx context.Context, params repository.ListParams) ([]domain.Route, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	flight.ID = 10
	return args.Error(0)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) List(ctx context.Context, params repository.ListParams) ([]domain.Flight, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) SeatUsage(ctx context.Context, flightID int64) (int, int, error) {
	args := m.Called(ctx, flightID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func TestAvailableSeats(t *testing.T) {
	flights := new(MockFlightRepository)
	flights.On("SeatUsage", mock.Anything, int64(1)).Return(180, 3, nil)

	svc := NewFlightService(new(MockRouteRepository), flights)
	available, err := svc.AvailableSeats(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 177, available)
}

func TestAvailableSeats_Idempotent(t *testing.T) {
	flights := new(MockFlightRepository)
	flights.On("SeatUsage", mock.Anything, int64(1)).Return(180, 0, nil)

	svc := NewFlightService(new(MockRouteRepository), flights)
	first, err := svc.AvailableSeats(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.AvailableSeats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 180, first)
	assert.Equal(t, first, second)
	flights.AssertNumberOfCalls(t, "SeatUsage", 2)
}

func TestAvailableSeats_Overbooked(t *testing.T) {
	flights := new(MockFlightRepository)
	flights.On("SeatUsage", mock.Anything, int64(2)).Return(10, 12, nil)

	svc := NewFlightService(new(MockRouteRepository), flights)
	available, err := svc.AvailableSeats(context.Background(), 2)

	assert.Equal(t, -2, available)
	var alarm *domain.ConsistencyAlarm
	require.True(t, errors.As(err, &alarm))
	assert.Equal(t, 12, alarm.Issued)
	assert.ErrorIs(t, err, domain.ErrConsistency)
}

func TestAvailableSeats_UnknownFlight(t *testing.T) {
	flights := new(MockFlightRepository)
	flights.On("SeatUsage", mock.Anything, int64(5)).Return(0, 0, &domain.NotFoundError{Entity: "flight", ID: 5})

	svc := NewFlightService(new(MockRouteRepository), flights)
	_, err := svc.AvailableSeats(context.Background(), 5)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateFlight_ArrivalBeforeDeparture(t *testing.T) {
	flights := new(MockFlightRepository)
	svc := NewFlightService(new(MockRouteRepository), flights)

	dep := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateFlight(context.Background(), CreateFlightInput{
		RouteID:       1,
		AirplaneID:    1,
		DepartureTime: dep,
		ArrivalTime:   dep.Add(-time.Hour),
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must be higher than departure_time", verr.Fields["arrival_time"])
	flights.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateFlight_Success(t *testing.T) {
	dep := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	arr := dep.Add(2*time.Hour + 30*time.Minute)
	stored := &domain.Flight{ID: 10, RouteID: 1, AirplaneID: 2, DepartureTime: dep, ArrivalTime: arr, TicketsAvailable: 180, Capacity: 180}

	flights := new(MockFlightRepository)
	flights.On("Create", mock.Anything, mock.AnythingOfType("*domain.Flight")).Return(nil)
	flights.On("GetByID", mock.Anything, int64(10)).Return(stored, nil)

	svc := NewFlightService(new(MockRouteRepository), flights)
	flight, err := svc.CreateFlight(context.Background(), CreateFlightInput{RouteID: 1, AirplaneID: 2, DepartureTime: dep, ArrivalTime: arr})

	require.NoError(t, err)
	assert.Equal(t, 180, flight.TicketsAvailable)
	assert.Equal(t, "2 h 30 min", flight.FlightTime())
	flights.AssertExpectations(t)
}

func TestCreateRoute_SameSourceAndDestination(t *testing.T) {
	stored := &domain.Route{ID: 1, SourceID: 3, DestinationID: 3, Distance: 100}
	routes := new(MockRouteRepository)
	routes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Route")).Return(nil)
	routes.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)

	svc := NewFlightService(routes, new(MockFlightRepository))
	route, err := svc.CreateRoute(context.Background(), CreateRouteInput{SourceID: 3, DestinationID: 3, Distance: 100})

	require.NoError(t, err)
	assert.Equal(t, int64(3), route.SourceID)
}

func TestCreateRoute_InvalidDistance(t *testing.T) {
	routes := new(MockRouteRepository)
	svc := NewFlightService(routes, new(MockFlightRepository))

	_, err := svc.CreateRoute(context.Background(), CreateRouteInput{SourceID: 1, DestinationID: 2, Distance: 0})

	assert.ErrorIs(t, err, domain.ErrValidation)
	routes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListFlights_PassesParams(t *testing.T) {
	params := repository.ListParams{
		Filters:  []repository.Filter{{Field: "route", Op: repository.OpEq, Value: int64(1)}},
		Ordering: []string{"departure_time"},
	}
	flights := new(MockFlightRepository)
	flights.On("List", mock.Anything, params).Return([]domain.Flight{{ID: 1, TicketsAvailable: -1, Capacity: 10}}, nil)

	svc := NewFlightService(new(MockRouteRepository), flights)
	list, err := svc.ListFlights(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, -1, list[0].TicketsAvailable)
}
