package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/venicelabs/orders/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.getBy(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getBy(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username)
}

func (r *userRepository) getBy(ctx context.Context, query string, arg any) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, domain.Unavailable("select user", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()

	return user, nil
}

var _ domain.UserRepository = (*userRepository)(nil)
