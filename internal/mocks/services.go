package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/basebackend-server/internal/model"
)

// AuthService is a mock of the session lifecycle service.
type AuthService struct {
	mock.Mock
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)
	return m
}

func (m *AuthService) Register(ctx context.Context, username, password string) (model.User, string, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(model.User), args.String(1), args.Error(2)
}

func (m *AuthService) Login(ctx context.Context, username, password string) (model.User, string, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(model.User), args.String(1), args.Error(2)
}

func (m *AuthService) Logout(ctx context.Context, user model.User, token string) error {
	return m.Called(ctx, user, token).Error(0)
}

func (m *AuthService) Authenticate(ctx context.Context, token string) (model.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.User), args.Error(1)
}

// ItemService is a mock of the item service.
type ItemService struct {
	mock.Mock
}

func NewItemService(t testingT) *ItemService {
	m := &ItemService{}
	register(&m.Mock, t)
	return m
}

func (m *ItemService) Create(ctx context.Context, creatorID uuid.UUID, params model.CreateItemParams) (model.Item, error) {
	args := m.Called(ctx, creatorID, params)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *ItemService) List(ctx context.Context, creatorID uuid.UUID) ([]model.Item, error) {
	args := m.Called(ctx, creatorID)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *ItemService) Get(ctx context.Context, creatorID, id uuid.UUID) (model.Item, error) {
	args := m.Called(ctx, creatorID, id)
	return args.Get(0).(model.Item), args.Error(1)
}

func (m *ItemService) Update(ctx context.Context, creatorID, id uuid.UUID, params model.UpdateItemParams) (model.Item, error) {
	args := m.Called(ctx, creatorID, id, params)
	return args.Get(0).(model.Item), args.Error(1)
}

// FileService is a mock of the file service.
type FileService struct {
	mock.Mock
}

func NewFileService(t testingT) *FileService {
	m := &FileService{}
	register(&m.Mock, t)
	return m
}

func (m *FileService) Upload(ctx context.Context, params model.UploadFileParams, reader io.Reader) (model.File, error) {
	args := m.Called(ctx, params, reader)
	return args.Get(0).(model.File), args.Error(1)
}

func (m *FileService) Download(ctx context.Context, ownerID, id uuid.UUID) (model.File, io.ReadCloser, error) {
	args := m.Called(ctx, ownerID, id)
	rc, _ := args.Get(1).(io.ReadCloser)
	return args.Get(0).(model.File), rc, args.Error(2)
}

func (m *FileService) List(ctx context.Context, ownerID uuid.UUID) ([]model.File, error) {
	args := m.Called(ctx, ownerID)
	files, _ := args.Get(0).([]model.File)
	return files, args.Error(1)
}
