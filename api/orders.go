package api

import (
	"net/http"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/Domenick1991/airservice/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service booking.OrderUseCase
	limiter gin.HandlerFunc
}

type createOrderRequest struct {
	Tickets []domain.TicketSpec `json:"tickets"`
}

func NewOrderHandler(service booking.OrderUseCase, limiter gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{service: service, limiter: limiter}
}

// Register expects router to be behind JWTAuth.
func (h *OrderHandler) Register(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	orders.GET("", h.list)
	if h.limiter != nil {
		orders.POST("", h.limiter, h.create)
	} else {
		orders.POST("", h.create)
	}
	orders.GET("/:id", h.get)
	orders.DELETE("/:id", h.delete)

	tickets := router.Group("/tickets")
	tickets.GET("", h.listTickets)
	tickets.POST("", h.createTicket)
	tickets.GET("/:id", h.getTicket)
	tickets.DELETE("/:id", h.deleteTicket)
}

func (h *OrderHandler) create(c *gin.Context) {
	userID, ok := h.user(c)
	if !ok {
		return
	}
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	o, err := h.service.CreateOrder(c.Request.Context(), userID, req.Tickets)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderView(o))
}

// list only shows orders of the current user.
func (h *OrderHandler) list(c *gin.Context) {
	userID, ok := h.user(c)
	if !ok {
		return
	}
	params, err := listParams(c, ids("id", "id"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	params.Filters = append(params.Filters, repository.Filter{Field: "user", Op: repository.OpEq, Value: userID})

	list, err := h.service.ListOrders(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, orderView))
}

func (h *OrderHandler) get(c *gin.Context) {
	o, ok := h.ownOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, orderView(o))
}

func (h *OrderHandler) delete(c *gin.Context) {
	o, ok := h.ownOrder(c)
	if !ok {
		return
	}
	if err := h.service.DeleteOrder(c.Request.Context(), o.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ownOrder loads the order named in the path and hides orders of other
// users behind a 404.
func (h *OrderHandler) ownOrder(c *gin.Context) (*domain.Order, bool) {
	userID, ok := h.user(c)
	if !ok {
		return nil, false
	}
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	return h.owned(c, userID, id, &domain.NotFoundError{Entity: "order", ID: id})
}

// ownTicket does the same for tickets, judged by the order holding them.
func (h *OrderHandler) ownTicket(c *gin.Context) (*domain.Ticket, bool) {
	userID, ok := h.user(c)
	if !ok {
		return nil, false
	}
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	t, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if _, ok := h.owned(c, userID, t.OrderID, &domain.NotFoundError{Entity: "ticket", ID: id}); !ok {
		return nil, false
	}
	return t, true
}

// owned writes hidden when orderID belongs to someone other than userID.
func (h *OrderHandler) owned(c *gin.Context, userID, orderID int64, hidden error) (*domain.Order, bool) {
	o, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if o.UserID != userID {
		writeError(c, hidden)
		return nil, false
	}
	return o, true
}

func (h *OrderHandler) user(c *gin.Context) (int64, bool) {
	userID, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return 0, false
	}
	return userID, true
}

// listTickets only shows tickets in orders of the current user.
func (h *OrderHandler) listTickets(c *gin.Context) {
	userID, ok := h.user(c)
	if !ok {
		return
	}
	params, err := listParams(c, ids("id", "id"), eq("flight", "flight"), eq("order", "order"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	params.Filters = append(params.Filters, repository.Filter{Field: "user", Op: repository.OpEq, Value: userID})

	list, err := h.service.ListTickets(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, ticketView))
}

func (h *OrderHandler) createTicket(c *gin.Context) {
	userID, ok := h.user(c)
	if !ok {
		return
	}
	var req booking.CreateTicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, ok := h.owned(c, userID, req.OrderID, &domain.NotFoundError{Entity: "order", ID: req.OrderID}); !ok {
		return
	}

	t, err := h.service.CreateTicket(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticketView(t))
}

func (h *OrderHandler) getTicket(c *gin.Context) {
	t, ok := h.ownTicket(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ticketView(t))
}

func (h *OrderHandler) deleteTicket(c *gin.Context) {
	t, ok := h.ownTicket(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTicket(c.Request.Context(), t.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
