package mocks

import (
	"context"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/basebackend-server/internal/model"
)

// Storage is a mock of model.Storage.
type Storage struct {
	mock.Mock
}

func NewStorage(t testingT) *Storage {
	m := &Storage{}
	register(&m.Mock, t)
	return m
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, reader, size, contentType).Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *Storage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// TokenCodec is a mock of model.TokenCodec.
type TokenCodec struct {
	mock.Mock
}

func NewTokenCodec(t testingT) *TokenCodec {
	m := &TokenCodec{}
	register(&m.Mock, t)
	return m
}

func (m *TokenCodec) Issue(userID uuid.UUID, access string) (string, error) {
	args := m.Called(userID, access)
	return args.String(0), args.Error(1)
}

func (m *TokenCodec) Verify(token string) (model.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenClaims), args.Error(1)
}

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	register(&m.Mock, t)
	return m
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(password, digest string) bool {
	return m.Called(password, digest).Bool(0)
}

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	register(&m.Mock, t)
	return m
}

func (m *ContextManager) SetUserToContext(ctx context.Context, user model.User, token string) context.Context {
	return m.Called(ctx, user, token).Get(0).(context.Context)
}

func (m *ContextManager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	args := m.Called(ctx)
	return args.Get(0).(model.User), args.Bool(1)
}

func (m *ContextManager) GetTokenFromContext(ctx context.Context) (string, bool) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1)
}

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(&m.Mock, t)
	return m
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	args := m.Called(protocol, addr)
	ln, _ := args.Get(0).(net.Listener)
	return ln, args.Error(1)
}
