package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

type AirplaneTypeRepository interface {
	Create(ctx context.Context, t *domain.AirplaneType) error
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	List(ctx context.Context, params ListParams) ([]domain.AirplaneType, error)
	Delete(ctx context.Context, id int64) error
}

type PGAirplaneTypeRepository struct {
	db Querier
}

func NewAirplaneTypeRepository(db Querier) AirplaneTypeRepository {
	return &PGAirplaneTypeRepository{db: db}
}

var airplaneTypeColumns = columns{
	"id":            "t.id",
	"name":          "t.name",
	"airplane_park": "airplane_park",
}

var airplaneTypeSelect = psql.Select("t.id", "t.name",
	"(SELECT count(*) FROM airplanes a WHERE a.airplane_type_id = t.id) AS airplane_park").
	From("airplane_types t")

func (r *PGAirplaneTypeRepository) Create(ctx context.Context, t *domain.AirplaneType) error {
	err := querier(ctx, r.db).QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).
		Scan(&t.ID)
	return mapError("airplane_type", err)
}

func (r *PGAirplaneTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	q := querier(ctx, r.db)
	var t domain.AirplaneType
	if err := queryRow(ctx, q, airplaneTypeSelect.Where(sq.Eq{"t.id": id})).Scan(&t.ID, &t.Name, &t.AirplanePark); err != nil {
		return nil, notFound("airplane_type", id, err)
	}

	names, err := queryStrings(ctx, q, `SELECT name FROM airplanes WHERE airplane_type_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, mapError("airplane_type", err)
	}
	t.Airplanes = names
	return &t, nil
}

func (r *PGAirplaneTypeRepository) List(ctx context.Context, params ListParams) ([]domain.AirplaneType, error) {
	if len(params.Ordering) == 0 {
		params.Ordering = []string{"name"}
	}
	b, err := params.apply("airplane_type", airplaneTypeColumns, psql.Select("*").FromSelect(airplaneTypeSelect, "t"))
	if err != nil {
		return nil, err
	}
	rows, err := query(ctx, querier(ctx, r.db), b)
	if err != nil {
		return nil, mapError("airplane_type", err)
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name, &t.AirplanePark); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGAirplaneTypeRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, querier(ctx, r.db), "airplane_type", `DELETE FROM airplane_types WHERE id=$1`, id)
}

var _ AirplaneTypeRepository = (*PGAirplaneTypeRepository)(nil)
