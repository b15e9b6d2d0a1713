package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

type constraintInfo struct {
	entity string
	fields []string
}

// Constraint names are fixed in migrations/0001_init.sql.
var uniqueConstraints = map[string]constraintInfo{
	"users_email_key":             {"user", []string{"email"}},
	"countries_name_key":          {"country", []string{"name"}},
	"cities_name_country_id_key":  {"city", []string{"name", "country"}},
	"airplane_types_name_key":     {"airplane_type", []string{"name"}},
	"airplane_crew_pkey":          {"airplane", []string{"crew"}},
	"tickets_flight_row_seat_key": {"ticket", []string{"flight", "row", "seat"}},
}

// Foreign keys map to the referenced entity.
var foreignKeys = map[string]string{
	"cities_country_id_fkey":            "country",
	"airports_closest_big_city_id_fkey": "city",
	"airplanes_airplane_type_id_fkey":   "airplane_type",
	"airplane_crew_airplane_id_fkey":    "airplane",
	"airplane_crew_crew_id_fkey":        "crew",
	"routes_source_id_fkey":             "airport",
	"routes_destination_id_fkey":        "airport",
	"flights_route_id_fkey":             "route",
	"flights_airplane_id_fkey":          "airplane",
	"orders_user_id_fkey":               "user",
	"tickets_flight_id_fkey":            "flight",
	"tickets_order_id_fkey":             "order",
}

var checkConstraints = map[string]string{
	"airplanes_rows_check":         "rows",
	"airplanes_seats_in_row_check": "seats_in_row",
	"routes_distance_check":        "distance",
	"flights_schedule_check":       "arrival_time",
	"tickets_row_check":            "row",
	"tickets_seat_check":           "seat",
}

// mapError translates driver errors into the domain error taxonomy.
// Errors it does not recognise are wrapped with the entity name.
func mapError(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.NotFoundError{Entity: entity}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", entity, err)
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		info, ok := uniqueConstraints[pgErr.ConstraintName]
		if !ok {
			info = constraintInfo{entity: entity}
		}
		return &domain.ConflictError{Entity: info.entity, Fields: info.fields, Reason: "already exists"}
	case pgForeignKeyViolation:
		ref, ok := foreignKeys[pgErr.ConstraintName]
		if !ok {
			ref = "referenced " + entity
		}
		return &domain.NotFoundError{Entity: ref}
	case pgCheckViolation:
		field := pgErr.ColumnName
		if field == "" {
			field = checkConstraints[pgErr.ConstraintName]
		}
		if field == "" {
			field = "value"
		}
		return domain.NewValidationError(entity, field, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", entity, err)
}

func notFound(entity string, id int64, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return mapError(entity, err)
}
