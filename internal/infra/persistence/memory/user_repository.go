// Package memory contains an in-process credential store for local development and tests.
package memory

import (
	"context"
	"sync"

	"apilogin/internal/domain/entity"
	"apilogin/internal/domain/repository"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

// NewUserRepository returns an empty in-memory credential store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{users: make(map[string]entity.User)}
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (repo *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	_, ok := repo.users[email]

	return ok, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[user.Email]; ok {
		return repository.ErrUserAlreadyExists
	}
	repo.users[user.Email] = *cloneUser(*user)

	return nil
}

func (repo *userRepository) UpdateSession(ctx context.Context, email string, patch entity.SessionPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}

	lastLogin := patch.LastLogin
	user.IsLoggedIn = patch.IsLoggedIn
	user.LastLogin = &lastLogin
	repo.users[email] = user

	return nil
}

// cloneUser detaches the LastLogin pointer so callers never share state with the store.
func cloneUser(user entity.User) *entity.User {
	if user.LastLogin != nil {
		lastLogin := *user.LastLogin
		user.LastLogin = &lastLogin
	}

	return &user
}
