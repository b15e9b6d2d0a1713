package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, params ListParams) ([]domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type PGOrderRepository struct {
	db Querier
}

func NewOrderRepository(db Querier) OrderRepository {
	return &PGOrderRepository{db: db}
}

var orderColumns = columns{
	"id":         "id",
	"user":       "user_id",
	"created_at": "created_at",
}

// Create inserts the order row; created_at is assigned by the database.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	err := querier(ctx, r.db).QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID).
		Scan(&order.ID, &order.CreatedAt)
	return mapError("order", err)
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := querier(ctx, r.db).QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		return nil, notFound("order", id, err)
	}
	return &o, nil
}

func (r *PGOrderRepository) List(ctx context.Context, params ListParams) ([]domain.Order, error) {
	if len(params.Ordering) == 0 {
		params.Ordering = []string{"-created_at"}
	}
	b, err := params.apply("order", orderColumns, psql.Select("id", "user_id", "created_at").From("orders"))
	if err != nil {
		return nil, err
	}
	rows, err := query(ctx, querier(ctx, r.db), b)
	if err != nil {
		return nil, mapError("order", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Delete removes the order together with its tickets.
func (r *PGOrderRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, querier(ctx, r.db), "order", `DELETE FROM orders WHERE id=$1`, id)
}

var _ OrderRepository = (*PGOrderRepository)(nil)
