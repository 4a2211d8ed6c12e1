package memory

import (
	"context"
	"sync"

	"github.com/venicelabs/orders/internal/domain"
)

// UserRepository хранит пользователей в памяти процесса.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byLogin map[string]string // username -> id
}

// NewUserRepository создаёт пустой репозиторий пользователей.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]domain.User),
		byLogin: make(map[string]string),
	}
}

// Add регистрирует пользователя; существующая запись перезаписывается.
func (r *UserRepository) Add(user domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[user.ID] = user
	r.byLogin[user.Username] = user.ID
}

func (r *UserRepository) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return r.byID[id], nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
