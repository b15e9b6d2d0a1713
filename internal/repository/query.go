package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

// ListParams carries predicate, ordering and pagination pushed down from
// the API layer. Ordering entries are field names, prefixed with "-" for
// descending order.
type ListParams struct {
	Filters  []Filter
	Ordering []string
	Limit    int
	Offset   int
}

const defaultOrdering = "-id"

// ParseOrdering splits a comma separated ordering parameter.
func ParseOrdering(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// columns whitelists the fields of one entity that may be filtered or
// sorted on, keyed by API field name.
type columns map[string]string

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// apply appends WHERE and ORDER BY/LIMIT/OFFSET clauses to base. Unknown
// filter fields are rejected; unknown ordering fields are dropped and the
// default ordering applies when nothing valid remains.
func (p ListParams) apply(entity string, cols columns, base sq.SelectBuilder) (sq.SelectBuilder, error) {
	q := base
	for _, f := range p.Filters {
		col, ok := cols[f.Field]
		if !ok {
			return q, domain.NewValidationError(entity, f.Field, "filtering on this field is not supported")
		}
		switch f.Op {
		case OpEq, OpIn:
			q = q.Where(sq.Eq{col: f.Value})
		case OpGte:
			q = q.Where(sq.GtOrEq{col: f.Value})
		case OpLte:
			q = q.Where(sq.LtOrEq{col: f.Value})
		default:
			return q, domain.NewValidationError(entity, f.Field, fmt.Sprintf("unsupported operator %q", f.Op))
		}
	}

	order := orderBy(p.Ordering, cols)
	if len(order) == 0 {
		order = orderBy([]string{defaultOrdering}, cols)
	}
	q = q.OrderBy(order...)

	if p.Limit > 0 {
		q = q.Limit(uint64(p.Limit))
	}
	if p.Offset > 0 {
		q = q.Offset(uint64(p.Offset))
	}
	return q, nil
}

func orderBy(fields []string, cols columns) []string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		dir := "ASC"
		if strings.HasPrefix(f, "-") {
			dir = "DESC"
			f = f[1:]
		}
		col, ok := cols[f]
		if !ok {
			continue
		}
		parts = append(parts, col+" "+dir)
	}
	return parts
}

// queryRow renders b and runs it as a single-row query.
func queryRow(ctx context.Context, q Querier, b sq.Sqlizer) pgx.Row {
	sql, args, err := b.ToSql()
	if err != nil {
		return errRow{err}
	}
	return q.QueryRow(ctx, sql, args...)
}

func query(ctx context.Context, q Querier, b sq.Sqlizer) (pgx.Rows, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return q.Query(ctx, sql, args...)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
