package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	List(ctx context.Context, params ListParams) ([]domain.Route, error)
	Delete(ctx context.Context, id int64) error
}

type PGRouteRepository struct {
	db Querier
}

func NewRouteRepository(db Querier) RouteRepository {
	return &PGRouteRepository{db: db}
}

var routeColumns = columns{
	"id":          "r.id",
	"source":      "r.source_id",
	"destination": "r.destination_id",
	"distance":    "r.distance",
}

var routeSelect = psql.Select("r.id", "r.source_id", "r.destination_id", "r.distance", "sc.name", "dc.name").
	From("routes r").
	Join("airports sa ON sa.id = r.source_id").
	Join("cities sc ON sc.id = sa.closest_big_city_id").
	Join("airports da ON da.id = r.destination_id").
	Join("cities dc ON dc.id = da.closest_big_city_id")

func scanRoute(row pgx.Row, r *domain.Route) error {
	return row.Scan(&r.ID, &r.SourceID, &r.DestinationID, &r.Distance, &r.SourceCity, &r.DestinationCity)
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := querier(ctx, r.db).QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
	return mapError("route", err)
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	var route domain.Route
	if err := scanRoute(queryRow(ctx, querier(ctx, r.db), routeSelect.Where(sq.Eq{"r.id": id})), &route); err != nil {
		return nil, notFound("route", id, err)
	}
	return &route, nil
}

func (r *PGRouteRepository) List(ctx context.Context, params ListParams) ([]domain.Route, error) {
	b, err := params.apply("route", routeColumns, routeSelect)
	if err != nil {
		return nil, err
	}
	rows, err := query(ctx, querier(ctx, r.db), b)
	if err != nil {
		return nil, mapError("route", err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var route domain.Route
		if err := scanRoute(rows, &route); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, querier(ctx, r.db), "route", `DELETE FROM routes WHERE id=$1`, id)
}

var _ RouteRepository = (*PGRouteRepository)(nil)
