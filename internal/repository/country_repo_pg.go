package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
)

type CountryRepository interface {
	Create(ctx context.Context, country *domain.Country) error
	GetByID(ctx context.Context, id int64) (*domain.Country, error)
	List(ctx context.Context, params ListParams) ([]domain.Country, error)
	Delete(ctx context.Context, id int64) error
}

type PGCountryRepository struct {
	db Querier
}

func NewCountryRepository(db Querier) CountryRepository {
	return &PGCountryRepository{db: db}
}

var countryColumns = columns{
	"id":   "c.id",
	"name": "c.name",
}

func (r *PGCountryRepository) Create(ctx context.Context, country *domain.Country) error {
	err := querier(ctx, r.db).QueryRow(ctx, `INSERT INTO countries (name) VALUES ($1) RETURNING id`, country.Name).
		Scan(&country.ID)
	return mapError("country", err)
}

func (r *PGCountryRepository) GetByID(ctx context.Context, id int64) (*domain.Country, error) {
	q := querier(ctx, r.db)
	var c domain.Country
	if err := q.QueryRow(ctx, `SELECT id, name FROM countries WHERE id=$1`, id).Scan(&c.ID, &c.Name); err != nil {
		return nil, notFound("country", id, err)
	}

	names, err := queryStrings(ctx, q, `SELECT name FROM cities WHERE country_id=$1 ORDER BY name`, id)
	if err != nil {
		return nil, mapError("country", err)
	}
	c.Cities = names
	return &c, nil
}

func (r *PGCountryRepository) List(ctx context.Context, params ListParams) ([]domain.Country, error) {
	b, err := params.apply("country", countryColumns, psql.Select("c.id", "c.name").From("countries c"))
	if err != nil {
		return nil, err
	}
	rows, err := query(ctx, querier(ctx, r.db), b)
	if err != nil {
		return nil, mapError("country", err)
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

// Delete removes the country; cities and everything they own cascade.
func (r *PGCountryRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, querier(ctx, r.db), "country", `DELETE FROM countries WHERE id=$1`, id)
}

func deleteByID(ctx context.Context, q Querier, entity, sql string, id int64) error {
	cmd, err := q.Exec(ctx, sql, id)
	if err != nil {
		return mapError(entity, err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

var _ CountryRepository = (*PGCountryRepository)(nil)
