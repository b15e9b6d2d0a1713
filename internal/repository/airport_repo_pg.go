package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

type AirportRepository interface {
	Create(ctx context.Context, airport *domain.Airport) error
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	List(ctx context.Context, params ListParams) ([]domain.Airport, error)
	Delete(ctx context.Context, id int64) error
}

type PGAirportRepository struct {
	db Querier
}

func NewAirportRepository(db Querier) AirportRepository {
	return &PGAirportRepository{db: db}
}

var airportColumns = columns{
	"id":               "a.id",
	"name":             "a.name",
	"closest_big_city": "a.closest_big_city_id",
	"country":          "ci.country_id",
}

var airportSelect = psql.Select("a.id", "a.name", "a.closest_big_city_id", "ci.name", "co.name").
	From("airports a").
	Join("cities ci ON ci.id = a.closest_big_city_id").
	Join("countries co ON co.id = ci.country_id")

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	err := querier(ctx, r.db).QueryRow(ctx, `INSERT INTO airports (name, closest_big_city_id) VALUES ($1, $2) RETURNING id`, airport.Name, airport.ClosestBigCityID).
		Scan(&airport.ID)
	return mapError("airport", err)
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	q := querier(ctx, r.db)
	var a domain.Airport
	if err := queryRow(ctx, q, airportSelect.Where(sq.Eq{"a.id": id})).Scan(&a.ID, &a.Name, &a.ClosestBigCityID, &a.CityName, &a.CountryName); err != nil {
		return nil, notFound("airport", id, err)
	}

	names, err := queryStrings(ctx, q, `SELECT name FROM airports WHERE closest_big_city_id=$1 AND id<>$2 ORDER BY id`, a.ClosestBigCityID, a.ID)
	if err != nil {
		return nil, mapError("airport", err)
	}
	a.SameCityAirports = names
	return &a, nil
}

func (r *PGAirportRepository) List(ctx context.Context, params ListParams) ([]domain.Airport, error) {
	b, err := params.apply("airport", airportColumns, airportSelect)
	if err != nil {
		return nil, err
	}
	rows, err := query(ctx, querier(ctx, r.db), b)
	if err != nil {
		return nil, mapError("airport", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCityID, &a.CityName, &a.CountryName); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, querier(ctx, r.db), "airport", `DELETE FROM airports WHERE id=$1`, id)
}

var _ AirportRepository = (*PGAirportRepository)(nil)
