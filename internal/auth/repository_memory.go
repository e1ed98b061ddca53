package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// InMemoryUserRepository backs the auth service in tests.
type InMemoryUserRepository struct {
	mu         sync.Mutex
	users      map[string]*User
	households map[uuid.UUID]*Household
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:      make(map[string]*User),
		households: make(map[uuid.UUID]*Household),
	}
}

func (r *InMemoryUserRepository) CreateWithHousehold(
	_ context.Context,
	household *Household,
	user *User,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.households[household.ID] = household
	r.users[user.Email] = user
	return nil
}

func (r *InMemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.users[email]
	return exists, nil
}

func (r *InMemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetHousehold(_ context.Context, id uuid.UUID) (*Household, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.households[id]
	if !ok {
		return nil, errors.New("household not found")
	}
	return h, nil
}
