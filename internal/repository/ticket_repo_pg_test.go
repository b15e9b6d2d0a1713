package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	airplaneDimensionsSQL = `SELECT a.rows, a.seats_in_row FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE f.id=$1`
	insertTicketSQL       = `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4)`
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func expectDimensions(mock pgxmock.PgxPoolIface, flightID int64, rows, seats int) {
	mock.ExpectQuery(regexp.QuoteMeta(airplaneDimensionsSQL)).
		WithArgs(flightID).
		WillReturnRows(pgxmock.NewRows([]string{"rows", "seats_in_row"}).AddRow(rows, seats))
}

func TestTicketCreate_Inserts(t *testing.T) {
	mock := newMockPool(t)
	expectDimensions(mock, 7, 30, 6)
	mock.ExpectQuery(regexp.QuoteMeta(insertTicketSQL)).
		WithArgs(12, 4, int64(7), int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "notification_sent"}).AddRow(int64(5), false))

	ticket := &domain.Ticket{Row: 12, Seat: 4, FlightID: 7, OrderID: 11}
	err := NewTicketRepository(mock).Create(context.Background(), ticket)

	require.NoError(t, err)
	assert.Equal(t, int64(5), ticket.ID)
	assert.False(t, ticket.NotificationSent)
}

func TestTicketCreate_OutOfRangeSkipsInsert(t *testing.T) {
	mock := newMockPool(t)
	expectDimensions(mock, 7, 30, 6)

	err := NewTicketRepository(mock).Create(context.Background(), &domain.Ticket{Row: 31, Seat: 7, FlightID: 7, OrderID: 11})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("row"))
	assert.True(t, verr.Has("seat"))
}

func TestTicketCreate_UnknownFlight(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta(airplaneDimensionsSQL)).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	err := NewTicketRepository(mock).Create(context.Background(), &domain.Ticket{Row: 1, Seat: 1, FlightID: 99, OrderID: 11})

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "flight", nf.Entity)
	assert.Equal(t, int64(99), nf.ID)
}

func TestTicketCreate_SeatTaken(t *testing.T) {
	mock := newMockPool(t)
	expectDimensions(mock, 7, 30, 6)
	mock.ExpectQuery(regexp.QuoteMeta(insertTicketSQL)).
		WithArgs(3, 2, int64(7), int64(11)).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "tickets_flight_row_seat_key"})

	err := NewTicketRepository(mock).Create(context.Background(), &domain.Ticket{Row: 3, Seat: 2, FlightID: 7, OrderID: 11})

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "ticket", conflict.Entity)
	assert.Equal(t, []string{"flight", "row", "seat"}, conflict.Fields)
}

// The airplane can shrink between the bounds read and the insert; the
// trigger then rejects the row and names the offending column.
func TestTicketCreate_TriggerRejection(t *testing.T) {
	mock := newMockPool(t)
	expectDimensions(mock, 7, 30, 6)
	mock.ExpectQuery(regexp.QuoteMeta(insertTicketSQL)).
		WithArgs(30, 2, int64(7), int64(11)).
		WillReturnError(&pgconn.PgError{
			Code:       pgCheckViolation,
			Message:    "row must be in range of airplane rows",
			ColumnName: "row",
			TableName:  "tickets",
		})

	err := NewTicketRepository(mock).Create(context.Background(), &domain.Ticket{Row: 30, Seat: 2, FlightID: 7, OrderID: 11})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "row must be in range of airplane rows", verr.Fields["row"])
	assert.False(t, verr.Has("seat"))
}

func TestTicketList_ScopedToUser(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, "row", seat, flight_id, order_id, notification_sent FROM tickets ` +
		`WHERE (SELECT o.user_id FROM orders o WHERE o.id = tickets.order_id) = $1 ORDER BY seat ASC, "row" ASC`)).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "row", "seat", "flight_id", "order_id", "notification_sent"}).
			AddRow(int64(8), 1, 1, int64(7), int64(4), false))

	tickets, err := NewTicketRepository(mock).List(context.Background(), ListParams{
		Filters: []Filter{{Field: "user", Op: OpEq, Value: int64(2)}},
	})

	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, int64(4), tickets[0].OrderID)
}

func TestSeatUsage(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT a\.rows \* a\.seats_in_row, \(SELECT count\(\*\) FROM tickets t WHERE t\.flight_id = f\.id\)`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"capacity", "issued"}).AddRow(180, 3))

	capacity, issued, err := NewFlightRepository(mock).SeatUsage(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 180, capacity)
	assert.Equal(t, 3, issued)
}

func TestSeatUsage_UnknownFlight(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT a\.rows \* a\.seats_in_row`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, _, err := NewFlightRepository(mock).SeatUsage(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
