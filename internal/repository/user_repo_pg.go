package repository

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
)

// UserRepository gives the authentication collaborator a place to
// provision booking accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type PGUserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := querier(ctx, r.db).QueryRow(ctx, `INSERT INTO users (email) VALUES ($1) RETURNING id`, user.Email).Scan(&user.ID)
	return mapError("user", err)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := querier(ctx, r.db).QueryRow(ctx, `SELECT id, email FROM users WHERE id=$1`, id).Scan(&u.ID, &u.Email); err != nil {
		return nil, notFound("user", id, err)
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
