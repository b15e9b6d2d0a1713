package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Catalog *CatalogHandler
	Flights *FlightHandler
	Orders  *OrderHandler
}

// NewRouter mounts every handler under /api/v1. Order and ticket routes go
// through auth.
func NewRouter(h Handlers, auth gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	v1 := r.Group("/api/v1")
	h.Catalog.Register(v1)
	h.Flights.Register(v1)

	protected := v1.Group("")
	if auth != nil {
		protected.Use(auth)
	}
	h.Orders.Register(protected)
	return r
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}
