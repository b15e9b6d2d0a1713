package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context, params ListParams) ([]domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	// SeatUsage returns the airplane capacity and the number of tickets
	// issued for the flight, read in one statement.
	SeatUsage(ctx context.Context, flightID int64) (capacity, issued int, err error)
}

type PGFlightRepository struct {
	db Querier
}

func NewFlightRepository(db Querier) FlightRepository {
	return &PGFlightRepository{db: db}
}

var flightColumns = columns{
	"id":             "f.id",
	"route":          "f.route_id",
	"airplane":       "f.airplane_id",
	"departure_time": "f.departure_time",
	"arrival_time":   "f.arrival_time",
}

var flightSelect = psql.Select("f.id", "f.route_id", "f.airplane_id", "f.departure_time", "f.arrival_time",
	"a.name", "a.rows * a.seats_in_row",
	"a.rows * a.seats_in_row - (SELECT count(*) FROM tickets t WHERE t.flight_id = f.id)").
	From("flights f").
	Join("airplanes a ON a.id = f.airplane_id")

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime, &f.AirplaneName, &f.Capacity, &f.TicketsAvailable)
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := querier(ctx, r.db).QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES ($1, $2, $3, $4) RETURNING id`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).Scan(&flight.ID)
	return mapError("flight", err)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	var f domain.Flight
	if err := scanFlight(queryRow(ctx, querier(ctx, r.db), flightSelect.Where(sq.Eq{"f.id": id})), &f); err != nil {
		return nil, notFound("flight", id, err)
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context, params ListParams) ([]domain.Flight, error) {
	if len(params.Ordering) == 0 {
		params.Ordering = []string{"-departure_time"}
	}
	b, err := params.apply("flight", flightColumns, flightSelect)
	if err != nil {
		return nil, err
	}
	rows, err := query(ctx, querier(ctx, r.db), b)
	if err != nil {
		return nil, mapError("flight", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, querier(ctx, r.db), "flight", `DELETE FROM flights WHERE id=$1`, id)
}

func (r *PGFlightRepository) SeatUsage(ctx context.Context, flightID int64) (int, int, error) {
	var capacity, issued int
	err := querier(ctx, r.db).QueryRow(ctx, `SELECT a.rows * a.seats_in_row, (SELECT count(*) FROM tickets t WHERE t.flight_id = f.id)
		FROM flights f JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id=$1`, flightID).Scan(&capacity, &issued)
	if err != nil {
		return 0, 0, notFound("flight", flightID, err)
	}
	return capacity, issued, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
