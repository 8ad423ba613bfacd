package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/basebackend-server/internal/model"
)

var _ model.UserStore = (*MemUserStore)(nil)

// MemUserStore is an in-memory UserStore with the same uniqueness and
// not-found semantics as the postgres repository.
type MemUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[uuid.UUID]model.User)}
}

// Len returns the number of stored users.
func (s *MemUserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *MemUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return model.User{}, model.ErrConflict
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Tokens = slices.Clone(user.Tokens)
	s.users[user.ID] = user

	return clone(user), nil
}

func (s *MemUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return clone(u), nil
}

func (s *MemUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return clone(u), nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *MemUserStore) GetByToken(_ context.Context, id uuid.UUID, token, access string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || !u.HasToken(token, access) {
		return model.User{}, model.ErrNotFound
	}
	return clone(u), nil
}

func (s *MemUserStore) PushToken(_ context.Context, id uuid.UUID, token model.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	u.Tokens = append(u.Tokens, token)
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

func (s *MemUserStore) PullToken(_ context.Context, id uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil
	}
	u.Tokens = slices.DeleteFunc(u.Tokens, func(t model.Token) bool { return t.Token == token })
	s.users[id] = u
	return nil
}

func clone(u model.User) model.User {
	u.Tokens = slices.Clone(u.Tokens)
	return u
}
