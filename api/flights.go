package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type availableSeatsResponse struct {
	Flight           int64 `json:"flight"`
	TicketsAvailable int   `json:"tickets_available"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	routes := router.Group("/routes")
	routes.GET("", h.listRoutes)
	routes.POST("", h.createRoute)
	routes.GET("/:id", h.getRoute)
	routes.DELETE("/:id", func(c *gin.Context) { deleteByID(c, h.service.DeleteRoute) })

	fl := router.Group("/flights")
	fl.GET("", h.list)
	fl.POST("", h.create)
	fl.GET("/:id", h.get)
	fl.GET("/:id/available-seats", h.availableSeats)
	fl.DELETE("/:id", func(c *gin.Context) { deleteByID(c, h.service.DeleteFlight) })
}

func (h *FlightHandler) listRoutes(c *gin.Context) {
	filters := []queryFilter{ids("id", "id"), eq("source", "source"), eq("destination", "destination")}
	filters = append(filters, between("distance", "distance", kindInt)...)

	params, err := listParams(c, filters...)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	list, err := h.service.ListRoutes(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, routeView))
}

func (h *FlightHandler) createRoute(c *gin.Context) {
	var req flights.CreateRouteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	r, err := h.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, routeView(r))
}

func (h *FlightHandler) getRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	r, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, routeView(r))
}

func (h *FlightHandler) list(c *gin.Context) {
	filters := []queryFilter{ids("id", "id"), eq("route", "route"), eq("airplane", "airplane")}
	filters = append(filters, between("departure_time", "departure_time", kindTime)...)

	params, err := listParams(c, filters...)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	list, err := h.service.ListFlights(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, flightView))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flights.CreateFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	f, err := h.service.CreateFlight(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flightView(f))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	f, err := h.service.GetFlight(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flightView(f))
}

// availableSeats never reports a negative count to clients; an overbooked
// flight surfaces as a server error.
func (h *FlightHandler) availableSeats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	available, err := h.service.AvailableSeats(c.Request.Context(), id)
	if errors.Is(err, domain.ErrConsistency) {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "seat availability is inconsistent"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, availableSeatsResponse{Flight: id, TicketsAvailable: available})
}
