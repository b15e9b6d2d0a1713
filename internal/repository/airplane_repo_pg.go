package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type AirplaneRepository interface {
	// Create inserts the airplane and its crew assignments. Call it inside
	// a transaction so a bad crew id leaves no airplane behind.
	Create(ctx context.Context, airplane *domain.Airplane) error
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	List(ctx context.Context, params ListParams) ([]domain.Airplane, error)
	SetImage(ctx context.Context, id int64, image string) (previous string, err error)
	// Delete removes the airplane and returns its image reference so the
	// caller can clean up the file once the delete is committed.
	Delete(ctx context.Context, id int64) (image string, err error)
}

type PGAirplaneRepository struct {
	db Querier
}

func NewAirplaneRepository(db Querier) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

var airplaneColumns = columns{
	"id":            "a.id",
	"name":          "a.name",
	"rows":          "a.rows",
	"seats_in_row":  "a.seats_in_row",
	"airplane_type": "a.airplane_type_id",
}

var airplaneSelect = psql.Select("a.id", "a.name", "a.rows", "a.seats_in_row", "a.airplane_type_id", "a.image", "t.name").
	From("airplanes a").
	Join("airplane_types t ON t.id = a.airplane_type_id")

func scanAirplane(row pgx.Row, a *domain.Airplane) error {
	return row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.Image, &a.AirplaneTypeName)
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	q := querier(ctx, r.db)
	err := q.QueryRow(ctx, `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id, image)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID, airplane.Image).
		Scan(&airplane.ID)
	if err != nil {
		return mapError("airplane", err)
	}

	for _, crewID := range airplane.CrewIDs {
		if _, err := q.Exec(ctx, `INSERT INTO airplane_crew (airplane_id, crew_id) VALUES ($1, $2)`, airplane.ID, crewID); err != nil {
			return mapError("airplane", err)
		}
	}
	return nil
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	q := querier(ctx, r.db)
	var a domain.Airplane
	if err := scanAirplane(queryRow(ctx, q, airplaneSelect.Where(sq.Eq{"a.id": id})), &a); err != nil {
		return nil, notFound("airplane", id, err)
	}
	if err := r.loadCrew(ctx, q, []*domain.Airplane{&a}); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGAirplaneRepository) List(ctx context.Context, params ListParams) ([]domain.Airplane, error) {
	b, err := params.apply("airplane", airplaneColumns, airplaneSelect)
	if err != nil {
		return nil, err
	}
	q := querier(ctx, r.db)
	rows, err := query(ctx, q, b)
	if err != nil {
		return nil, mapError("airplane", err)
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := scanAirplane(rows, &a); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	ptrs := make([]*domain.Airplane, len(airplanes))
	for i := range airplanes {
		ptrs[i] = &airplanes[i]
	}
	if err := r.loadCrew(ctx, q, ptrs); err != nil {
		return nil, err
	}
	return airplanes, nil
}

func (r *PGAirplaneRepository) loadCrew(ctx context.Context, q Querier, airplanes []*domain.Airplane) error {
	if len(airplanes) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Airplane, len(airplanes))
	ids := make([]int64, 0, len(airplanes))
	for _, a := range airplanes {
		a.CrewIDs = make([]int64, 0)
		a.Crew = make([]string, 0)
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}

	rows, err := q.Query(ctx, `SELECT ac.airplane_id, c.id, c.first_name, c.last_name
		FROM airplane_crew ac JOIN crews c ON c.id = ac.crew_id
		WHERE ac.airplane_id = ANY($1) ORDER BY c.id`, ids)
	if err != nil {
		return mapError("airplane", err)
	}
	defer rows.Close()

	for rows.Next() {
		var airplaneID int64
		var c domain.Crew
		if err := rows.Scan(&airplaneID, &c.ID, &c.FirstName, &c.LastName); err != nil {
			return err
		}
		a := byID[airplaneID]
		a.CrewIDs = append(a.CrewIDs, c.ID)
		a.Crew = append(a.Crew, c.FullName())
	}
	return rows.Err()
}

func (r *PGAirplaneRepository) SetImage(ctx context.Context, id int64, image string) (string, error) {
	var previous string
	err := querier(ctx, r.db).QueryRow(ctx, `UPDATE airplanes cur SET image=$2
		FROM airplanes prev WHERE cur.id = prev.id AND cur.id=$1
		RETURNING prev.image`, id, image).Scan(&previous)
	if err != nil {
		return "", notFound("airplane", id, err)
	}
	return previous, nil
}

func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) (string, error) {
	var image string
	if err := querier(ctx, r.db).QueryRow(ctx, `DELETE FROM airplanes WHERE id=$1 RETURNING image`, id).Scan(&image); err != nil {
		return "", notFound("airplane", id, err)
	}
	return image, nil
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
