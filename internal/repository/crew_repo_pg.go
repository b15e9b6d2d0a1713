package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
)

type CrewRepository interface {
	Create(ctx context.Context, crew *domain.Crew) error
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	List(ctx context.Context, params ListParams) ([]domain.Crew, error)
	Delete(ctx context.Context, id int64) error
}

type PGCrewRepository struct {
	db Querier
}

func NewCrewRepository(db Querier) CrewRepository {
	return &PGCrewRepository{db: db}
}

var crewColumns = columns{
	"id":         "c.id",
	"first_name": "c.first_name",
	"last_name":  "c.last_name",
}

func (r *PGCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	err := querier(ctx, r.db).QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`, crew.FirstName, crew.LastName).
		Scan(&crew.ID)
	return mapError("crew", err)
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	q := querier(ctx, r.db)
	var c domain.Crew
	if err := q.QueryRow(ctx, `SELECT id, first_name, last_name FROM crews WHERE id=$1`, id).Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
		return nil, notFound("crew", id, err)
	}

	names, err := queryStrings(ctx, q, `SELECT a.name FROM airplane_crew ac JOIN airplanes a ON a.id = ac.airplane_id WHERE ac.crew_id=$1 ORDER BY a.id`, id)
	if err != nil {
		return nil, mapError("crew", err)
	}
	c.Airplanes = names
	return &c, nil
}

func (r *PGCrewRepository) List(ctx context.Context, params ListParams) ([]domain.Crew, error) {
	b, err := params.apply("crew", crewColumns, psql.Select("c.id", "c.first_name", "c.last_name").From("crews c"))
	if err != nil {
		return nil, err
	}
	rows, err := query(ctx, querier(ctx, r.db), b)
	if err != nil {
		return nil, mapError("crew", err)
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}
	return crews, rows.Err()
}

func (r *PGCrewRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, querier(ctx, r.db), "crew", `DELETE FROM crews WHERE id=$1`, id)
}

var _ CrewRepository = (*PGCrewRepository)(nil)
