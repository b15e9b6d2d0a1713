package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

type CityRepository interface {
	Create(ctx context.Context, city *domain.City) error
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	List(ctx context.Context, params ListParams) ([]domain.City, error)
	Delete(ctx context.Context, id int64) error
}

type PGCityRepository struct {
	db Querier
}

func NewCityRepository(db Querier) CityRepository {
	return &PGCityRepository{db: db}
}

var cityColumns = columns{
	"id":      "ci.id",
	"name":    "ci.name",
	"country": "ci.country_id",
}

var citySelect = psql.Select("ci.id", "ci.name", "ci.country_id", "co.name").
	From("cities ci").
	Join("countries co ON co.id = ci.country_id")

func (r *PGCityRepository) Create(ctx context.Context, city *domain.City) error {
	err := querier(ctx, r.db).QueryRow(ctx, `INSERT INTO cities (name, country_id) VALUES ($1, $2) RETURNING id`, city.Name, city.CountryID).
		Scan(&city.ID)
	return mapError("city", err)
}

func (r *PGCityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	q := querier(ctx, r.db)
	var c domain.City
	if err := queryRow(ctx, q, citySelect.Where(sq.Eq{"ci.id": id})).Scan(&c.ID, &c.Name, &c.CountryID, &c.CountryName); err != nil {
		return nil, notFound("city", id, err)
	}

	names, err := queryStrings(ctx, q, `SELECT name FROM airports WHERE closest_big_city_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, mapError("city", err)
	}
	c.Airports = names
	return &c, nil
}

func (r *PGCityRepository) List(ctx context.Context, params ListParams) ([]domain.City, error) {
	b, err := params.apply("city", cityColumns, citySelect)
	if err != nil {
		return nil, err
	}
	rows, err := query(ctx, querier(ctx, r.db), b)
	if err != nil {
		return nil, mapError("city", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID, &c.CountryName); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *PGCityRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, querier(ctx, r.db), "city", `DELETE FROM cities WHERE id=$1`, id)
}

var _ CityRepository = (*PGCityRepository)(nil)
