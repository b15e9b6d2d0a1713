package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/rs/zerolog/log"
)

type FlightUseCase interface {
	CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	ListRoutes(ctx context.Context, params repository.ListParams) ([]domain.Route, error)
	DeleteRoute(ctx context.Context, id int64) error

	CreateFlight(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	ListFlights(ctx context.Context, params repository.ListParams) ([]domain.Flight, error)
	DeleteFlight(ctx context.Context, id int64) error

	AvailableSeats(ctx context.Context, flightID int64) (int, error)
}

type CreateRouteInput struct {
	SourceID      int64 `json:"source"`
	DestinationID int64 `json:"destination"`
	Distance      int   `json:"distance"`
}

type CreateFlightInput struct {
	RouteID       int64     `json:"route"`
	AirplaneID    int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type FlightService struct {
	routes  repository.RouteRepository
	flights repository.FlightRepository
}

func NewFlightService(routes repository.RouteRepository, flights repository.FlightRepository) *FlightService {
	return &FlightService{routes: routes, flights: flights}
}

func (s *FlightService) CreateRoute(ctx context.Context, input CreateRouteInput) (*domain.Route, error) {
	route := &domain.Route{SourceID: input.SourceID, DestinationID: input.DestinationID, Distance: input.Distance}
	if err := route.Validate(); err != nil {
		return nil, err
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, err
	}
	return s.routes.GetByID(ctx, route.ID)
}

func (s *FlightService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

func (s *FlightService) ListRoutes(ctx context.Context, params repository.ListParams) ([]domain.Route, error) {
	return s.routes.List(ctx, params)
}

func (s *FlightService) DeleteRoute(ctx context.Context, id int64) error {
	return s.routes.Delete(ctx, id)
}

// CreateFlight rejects schedules that arrive before departure. Overlapping
// flights on one airplane are accepted.
func (s *FlightService) CreateFlight(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	flight := &domain.Flight{
		RouteID:       input.RouteID,
		AirplaneID:    input.AirplaneID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
	}
	if err := flight.Validate(); err != nil {
		return nil, err
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}
	return s.flights.GetByID(ctx, flight.ID)
}

func (s *FlightService) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flight.TicketsAvailable < 0 {
		alarm(flight.ID, flight.Capacity, flight.Capacity-flight.TicketsAvailable)
	}
	return flight, nil
}

func (s *FlightService) ListFlights(ctx context.Context, params repository.ListParams) ([]domain.Flight, error) {
	list, err := s.flights.List(ctx, params)
	if err != nil {
		return nil, err
	}
	for _, f := range list {
		if f.TicketsAvailable < 0 {
			alarm(f.ID, f.Capacity, f.Capacity-f.TicketsAvailable)
		}
	}
	return list, nil
}

// DeleteFlight removes the flight; its tickets cascade.
func (s *FlightService) DeleteFlight(ctx context.Context, id int64) error {
	return s.flights.Delete(ctx, id)
}

// AvailableSeats returns capacity minus issued tickets, read fresh from
// storage. A negative count is returned as is together with a
// *domain.ConsistencyAlarm.
func (s *FlightService) AvailableSeats(ctx context.Context, flightID int64) (int, error) {
	capacity, issued, err := s.flights.SeatUsage(ctx, flightID)
	if err != nil {
		return 0, err
	}
	available := capacity - issued
	if available < 0 {
		return available, alarm(flightID, capacity, issued)
	}
	return available, nil
}

func alarm(flightID int64, capacity, issued int) error {
	err := &domain.ConsistencyAlarm{FlightID: flightID, Capacity: capacity, Issued: issued}
	log.Error().
		Err(err).
		Int64("flight_id", flightID).
		Int("capacity", capacity).
		Int("issued", issued).
		Int("available", capacity-issued).
		Msg("consistency alarm: flight overbooked")
	return err
}

var _ FlightUseCase = (*FlightService)(nil)
