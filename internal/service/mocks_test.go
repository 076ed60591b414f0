package service

import (
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/security"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByUsername(ctx context.Context, username string) (*model.Member, error) {
	args := m.Called(ctx, username)
	member, _ := args.Get(0).(*model.Member)
	return member, args.Error(1)
}

func (m *MockMemberRepository) FindByStoredRefreshToken(ctx context.Context, refreshToken string) (*model.Member, error) {
	args := m.Called(ctx, refreshToken)
	member, _ := args.Get(0).(*model.Member)
	return member, args.Error(1)
}

func (m *MockMemberRepository) UpdateStoredRefreshToken(ctx context.Context, username string, refreshToken string) error {
	return m.Called(ctx, username, refreshToken).Error(0)
}

type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) CreateAccessToken(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) CreateRefreshToken() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) Inspect(tokenString string) security.Inspection {
	return m.Called(tokenString).Get(0).(security.Inspection)
}

func (m *MockJWTService) ExpiresWithin(tokenString string, d time.Duration) bool {
	return m.Called(tokenString, d).Bool(0)
}

func (m *MockJWTService) Policy() security.Policy {
	return security.DefaultPolicy()
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyRotation(ctx context.Context, username string) {
	m.Called(ctx, username)
}

type MockAuthenticationManager struct {
	mock.Mock
}

func (m *MockAuthenticationManager) Authenticate(ctx context.Context, username string, password string) (*model.Principal, error) {
	args := m.Called(ctx, username, password)
	principal, _ := args.Get(0).(*model.Principal)
	return principal, args.Error(1)
}
