package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/gin-gonic/gin"
)

const maxPageSize = 1000

type paramKind int

const (
	kindInt paramKind = iota
	kindIntList
	kindTime
)

// queryFilter binds one query parameter to a filterable field.
type queryFilter struct {
	param string
	field string
	op    repository.Op
	kind  paramKind
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func deleteByID(c *gin.Context, del func(ctx context.Context, id int64) error) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listParams reads ordering, limit, offset and the given filters from the
// query string.
func listParams(c *gin.Context, filters ...queryFilter) (repository.ListParams, error) {
	params := repository.ListParams{Ordering: repository.ParseOrdering(c.Query("ordering"))}

	var err error
	if params.Limit, err = nonNegative(c, "limit"); err != nil {
		return params, err
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}
	if params.Offset, err = nonNegative(c, "offset"); err != nil {
		return params, err
	}

	for _, f := range filters {
		raw, ok := c.GetQuery(f.param)
		if !ok || raw == "" {
			continue
		}
		value, err := parseFilterValue(f.kind, raw)
		if err != nil {
			return params, fmt.Errorf("invalid %s: %w", f.param, err)
		}
		op := f.op
		if f.kind == kindIntList {
			op = repository.OpIn
		}
		params.Filters = append(params.Filters, repository.Filter{Field: f.field, Op: op, Value: value})
	}
	return params, nil
}

func nonNegative(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return n, nil
}

func parseFilterValue(kind paramKind, raw string) (any, error) {
	switch kind {
	case kindIntList:
		parts := strings.Split(raw, ",")
		ids := make([]int64, 0, len(parts))
		for _, p := range parts {
			id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, nil
	case kindTime:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", raw)
	default:
		return strconv.ParseInt(raw, 10, 64)
	}
}

func eq(param, field string) queryFilter {
	return queryFilter{param: param, field: field, op: repository.OpEq, kind: kindInt}
}

func ids(param, field string) queryFilter {
	return queryFilter{param: param, field: field, kind: kindIntList}
}

func between(prefix, field string, kind paramKind) []queryFilter {
	return []queryFilter{
		{param: prefix + "_min", field: field, op: repository.OpGte, kind: kind},
		{param: prefix + "_max", field: field, op: repository.OpLte, kind: kind},
	}
}
