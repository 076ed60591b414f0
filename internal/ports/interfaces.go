package ports

import (
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/security"
	"context"
	"time"
)

// MemberRepositoryInterface: хранилище учетных записей и их текущих refresh токенов.
type MemberRepositoryInterface interface {
	FindByUsername(ctx context.Context, username string) (*model.Member, error)
	FindByStoredRefreshToken(ctx context.Context, refreshToken string) (*model.Member, error)
	UpdateStoredRefreshToken(ctx context.Context, username string, refreshToken string) error
}

// AuthenticationManager проверяет логин и пароль.
// Возвращает model.ErrIdentityNotFound или model.ErrCredentialMismatch.
type AuthenticationManager interface {
	Authenticate(ctx context.Context, username string, password string) (*model.Principal, error)
}

type JWTServiceInterface interface {
	CreateAccessToken(username string) (string, error)
	CreateRefreshToken() (string, error)
	Inspect(tokenString string) security.Inspection
	ExpiresWithin(tokenString string, d time.Duration) bool
	Policy() security.Policy
}

// RotationNotifier получает события ротации refresh токена.
type RotationNotifier interface {
	NotifyRotation(ctx context.Context, username string)
}
