package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/basebackend-server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	register(&m.Mock, t)
	return m
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, model.User) model.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByToken(ctx context.Context, id uuid.UUID, token, access string) (model.User, error) {
	args := m.Called(ctx, id, token, access)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) PushToken(ctx context.Context, id uuid.UUID, token model.Token) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *UserStore) PullToken(ctx context.Context, id uuid.UUID, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

// ItemStore is a mock of model.ItemStore.
type ItemStore struct {
	mock.Mock
}

func NewItemStore(t testingT) *ItemStore {
	m := &ItemStore{}
	register(&m.Mock, t)
	return m
}

func (m *ItemStore) Create(ctx context.Context, item model.Item) (model.Item, error) {
	args := m.Called(ctx, item)
	if fn, ok := args.Get(0).(func(context.Context, model.Item) model.Item); ok {
		return fn(ctx, item), args.Error(1)
	}
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *ItemStore) GetByID(ctx context.Context, id uuid.UUID) (model.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *ItemStore) GetByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]model.Item, error) {
	args := m.Called(ctx, creatorID)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *ItemStore) Update(ctx context.Context, item model.Item) (model.Item, error) {
	args := m.Called(ctx, item)
	if fn, ok := args.Get(0).(func(context.Context, model.Item) model.Item); ok {
		return fn(ctx, item), args.Error(1)
	}
	return args.Get(0).(model.Item), args.Error(1)
}

// FileStore is a mock of model.FileStore.
type FileStore struct {
	mock.Mock
}

func NewFileStore(t testingT) *FileStore {
	m := &FileStore{}
	register(&m.Mock, t)
	return m
}

func (m *FileStore) Create(ctx context.Context, file model.File) (model.File, error) {
	args := m.Called(ctx, file)
	if fn, ok := args.Get(0).(func(context.Context, model.File) model.File); ok {
		return fn(ctx, file), args.Error(1)
	}
	return args.Get(0).(model.File), args.Error(1)
}

func (m *FileStore) GetByID(ctx context.Context, id uuid.UUID) (model.File, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.File), args.Error(1)
}

func (m *FileStore) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.File, error) {
	args := m.Called(ctx, ownerID)
	files, _ := args.Get(0).([]model.File)
	return files, args.Error(1)
}
