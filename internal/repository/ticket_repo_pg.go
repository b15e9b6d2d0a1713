package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type TicketRepository interface {
	// Create validates row and seat against the flight's airplane and
	// inserts the ticket. The (flight, row, seat) uniqueness check is the
	// storage constraint itself, so concurrent claims on one seat yield a
	// single winner.
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, params ListParams) ([]domain.Ticket, error)
	ListByOrders(ctx context.Context, orderIDs []int64) ([]domain.Ticket, error)
	Delete(ctx context.Context, id int64) error
	// DueReminders lists unnotified tickets whose flight departs in (from, to].
	DueReminders(ctx context.Context, from, to time.Time) ([]domain.TicketReminder, error)
	// MarkNotified flips notification_sent without touching row or seat.
	MarkNotified(ctx context.Context, ids []int64) (int64, error)
}

type PGTicketRepository struct {
	db Querier
}

func NewTicketRepository(db Querier) TicketRepository {
	return &PGTicketRepository{db: db}
}

var ticketColumns = columns{
	"id":                "id",
	"row":               `"row"`,
	"seat":              "seat",
	"flight":            "flight_id",
	"order":             "order_id",
	"notification_sent": "notification_sent",
	"user":              "(SELECT o.user_id FROM orders o WHERE o.id = tickets.order_id)",
}

var ticketSelect = psql.Select("id", `"row"`, "seat", "flight_id", "order_id", "notification_sent").From("tickets")

func scanTicket(row pgx.Row, t *domain.Ticket) error {
	return row.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID, &t.NotificationSent)
}

func (r *PGTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	q := querier(ctx, r.db)

	var rows, seats int
	err := q.QueryRow(ctx, `SELECT a.rows, a.seats_in_row FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE f.id=$1`, ticket.FlightID).
		Scan(&rows, &seats)
	if err != nil {
		return notFound("flight", ticket.FlightID, err)
	}
	if err := domain.ValidateSeatRow(ticket.Seat, ticket.Row, seats, rows); err != nil {
		return err
	}

	err = q.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4)
		RETURNING id, notification_sent`, ticket.Row, ticket.Seat, ticket.FlightID, ticket.OrderID).
		Scan(&ticket.ID, &ticket.NotificationSent)
	if err != nil {
		return mapError("ticket", err)
	}
	return nil
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := scanTicket(queryRow(ctx, querier(ctx, r.db), ticketSelect.Where(sq.Eq{"id": id})), &t); err != nil {
		return nil, notFound("ticket", id, err)
	}
	return &t, nil
}

func (r *PGTicketRepository) List(ctx context.Context, params ListParams) ([]domain.Ticket, error) {
	if len(params.Ordering) == 0 {
		params.Ordering = []string{"seat", "row"}
	}
	b, err := params.apply("ticket", ticketColumns, ticketSelect)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, b)
}

func (r *PGTicketRepository) ListByOrders(ctx context.Context, orderIDs []int64) ([]domain.Ticket, error) {
	if len(orderIDs) == 0 {
		return make([]domain.Ticket, 0), nil
	}
	return r.collect(ctx, ticketSelect.Where(sq.Eq{"order_id": orderIDs}).OrderBy("id"))
}

func (r *PGTicketRepository) collect(ctx context.Context, b sq.Sqlizer) ([]domain.Ticket, error) {
	rows, err := query(ctx, querier(ctx, r.db), b)
	if err != nil {
		return nil, mapError("ticket", err)
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *PGTicketRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, querier(ctx, r.db), "ticket", `DELETE FROM tickets WHERE id=$1`, id)
}

func (r *PGTicketRepository) DueReminders(ctx context.Context, from, to time.Time) ([]domain.TicketReminder, error) {
	rows, err := querier(ctx, r.db).Query(ctx, `SELECT t.id, t."row", t.seat, f.id, f.departure_time, a.name, sc.name, dc.name, u.email
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		JOIN airplanes a ON a.id = f.airplane_id
		JOIN routes r ON r.id = f.route_id
		JOIN airports sa ON sa.id = r.source_id
		JOIN cities sc ON sc.id = sa.closest_big_city_id
		JOIN airports da ON da.id = r.destination_id
		JOIN cities dc ON dc.id = da.closest_big_city_id
		JOIN orders o ON o.id = t.order_id
		JOIN users u ON u.id = o.user_id
		WHERE t.notification_sent = FALSE AND f.departure_time > $1 AND f.departure_time <= $2
		ORDER BY f.departure_time, t.id`, from, to)
	if err != nil {
		return nil, mapError("ticket", err)
	}
	defer rows.Close()

	reminders := make([]domain.TicketReminder, 0)
	for rows.Next() {
		var rm domain.TicketReminder
		if err := rows.Scan(&rm.TicketID, &rm.Row, &rm.Seat, &rm.FlightID, &rm.DepartureTime, &rm.AirplaneName,
			&rm.SourceCity, &rm.DestinationCity, &rm.Email); err != nil {
			return nil, err
		}
		reminders = append(reminders, rm)
	}
	return reminders, rows.Err()
}

func (r *PGTicketRepository) MarkNotified(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := querier(ctx, r.db).Exec(ctx, `UPDATE tickets SET notification_sent = TRUE WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, mapError("ticket", err)
	}
	return cmd.RowsAffected(), nil
}

var _ TicketRepository = (*PGTicketRepository)(nil)
