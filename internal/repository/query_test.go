package repository

import (
	"testing"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = columns{
	"id":       "r.id",
	"source":   "r.source_id",
	"distance": "r.distance",
}

var testSelect = psql.Select("r.id").From("routes r")

func render(t *testing.T, p ListParams) (string, []any) {
	t.Helper()
	b, err := p.apply("route", testColumns, testSelect)
	require.NoError(t, err)
	sql, args, err := b.ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestListParams_ApplyDefaults(t *testing.T) {
	sql, args := render(t, ListParams{})
	assert.Equal(t, "SELECT r.id FROM routes r ORDER BY r.id DESC", sql)
	assert.Empty(t, args)
}

func TestListParams_ApplyFiltersOrderingPaging(t *testing.T) {
	sql, args := render(t, ListParams{
		Filters: []Filter{
			{Field: "distance", Op: OpGte, Value: 100},
			{Field: "distance", Op: OpLte, Value: 900},
			{Field: "source", Op: OpIn, Value: []int64{1, 2}},
		},
		Ordering: []string{"-distance", "unknown", "id"},
		Limit:    10,
		Offset:   20,
	})

	assert.Equal(t, "SELECT r.id FROM routes r WHERE r.distance >= $1 AND r.distance <= $2 AND r.source_id IN ($3,$4) "+
		"ORDER BY r.distance DESC, r.id ASC LIMIT 10 OFFSET 20", sql)
	assert.Equal(t, []any{100, 900, int64(1), int64(2)}, args)
}

func TestListParams_ApplyKeepsBaseArgs(t *testing.T) {
	p := ListParams{Filters: []Filter{{Field: "id", Op: OpEq, Value: int64(7)}}}

	b, err := p.apply("route", testColumns, testSelect.Where("r.distance > ?", 42))
	require.NoError(t, err)
	sql, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT r.id FROM routes r WHERE r.distance > $1 AND r.id = $2 ORDER BY r.id DESC", sql)
	assert.Equal(t, []any{42, int64(7)}, args)
}

func TestListParams_ApplyRejectsUnknownFilter(t *testing.T) {
	p := ListParams{Filters: []Filter{{Field: "name; DROP TABLE routes", Op: OpEq, Value: 1}}}

	_, err := p.apply("route", testColumns, testSelect)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListParams_ApplyRejectsUnknownOperator(t *testing.T) {
	p := ListParams{Filters: []Filter{{Field: "distance", Op: Op("like"), Value: 1}}}

	_, err := p.apply("route", testColumns, testSelect)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListParams_OnlyUnknownOrderingFallsBack(t *testing.T) {
	sql, _ := render(t, ListParams{Ordering: []string{"-nope"}})
	assert.Equal(t, "SELECT r.id FROM routes r ORDER BY r.id DESC", sql)
}

func TestParseOrdering(t *testing.T) {
	assert.Equal(t, []string{"-distance", "id"}, ParseOrdering(" -distance, ,id"))
	assert.Nil(t, ParseOrdering(""))
}
