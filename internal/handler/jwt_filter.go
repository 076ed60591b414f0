package handler

import (
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/security"
	"context"
	"net/http"
)

// FilterFunc: звено цепочки, которое может завершиться ошибкой.
// При успехе фильтр сам вызывает next.
type FilterFunc func(writer http.ResponseWriter, request *http.Request, next http.Handler) error

// RequestAuthenticator: автомат аутентификации запроса.
type RequestAuthenticator interface {
	Authenticate(ctx context.Context, mode security.Mode, pair model.TokenPair) (*security.Authentication, error)
}

// JWTAuthenticationFilter классифицирует запрос, проверяет токены и кладет
// результат в контекст. Новые токены пишутся в заголовки ответа до этого.
type JWTAuthenticationFilter struct {
	Authenticator RequestAuthenticator
}

func NewJWTAuthenticationFilter(authenticator RequestAuthenticator) *JWTAuthenticationFilter {
	return &JWTAuthenticationFilter{Authenticator: authenticator}
}

func (filter *JWTAuthenticationFilter) Filter(writer http.ResponseWriter, request *http.Request, next http.Handler) error {
	mode := security.Classify(request)
	pair := security.Extract(request, mode)

	authentication, err := filter.Authenticator.Authenticate(request.Context(), mode, pair)
	if err != nil {
		return err
	}

	if authentication.ReissuedRefresh != "" {
		security.SetRefreshTokenHeader(writer, authentication.ReissuedRefresh)
	}
	if authentication.ReissuedAccess != "" {
		security.SetAccessTokenHeader(writer, authentication.ReissuedAccess)
	}

	ctx := security.WithAuthentication(request.Context(), authentication)
	next.ServeHTTP(writer, request.WithContext(ctx))
	return nil
}
