package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Entity string            `json:"entity,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Index  *int              `json:"index,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy, including consistency alarms, is reported as an
// opaque 500.
func writeError(c *gin.Context, err error) {
	resp := errorResponse{Error: err.Error()}

	var spec *domain.TicketSpecError
	if errors.As(err, &spec) {
		idx := spec.Index
		resp.Index = &idx
	}

	var (
		verr     *domain.ValidationError
		conflict *domain.ConflictError
		notFound *domain.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		resp.Entity, resp.Fields = verr.Entity, verr.Fields
		c.JSON(http.StatusBadRequest, resp)
	case errors.As(err, &conflict):
		resp.Entity = conflict.Entity
		if len(conflict.Fields) > 0 {
			resp.Fields = make(map[string]string, len(conflict.Fields))
			for _, f := range conflict.Fields {
				resp.Fields[f] = conflict.Reason
			}
		}
		c.JSON(http.StatusConflict, resp)
	case errors.As(err, &notFound):
		resp.Entity = notFound.Entity
		c.JSON(http.StatusNotFound, resp)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
