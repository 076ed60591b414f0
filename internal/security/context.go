package security

import (
	"context"

	"PeerFund_Auth/internal/model"
)

// State: итог автомата аутентификации для запроса.
type State int

const (
	PassThrough State = iota
	Validated
)

// Authentication: результат аутентификации, передаваемый дальше по цепочке явно через контекст.
type Authentication struct {
	Mode            Mode
	State           State
	Principal       *model.Principal
	ReissuedAccess  string
	ReissuedRefresh string
}

func (authentication *Authentication) Authenticated() bool {
	return authentication != nil && authentication.State == Validated && authentication.Principal != nil
}

type authenticationKey struct{}

type exceptionMessageKey struct{}

func WithAuthentication(ctx context.Context, authentication *Authentication) context.Context {
	return context.WithValue(ctx, authenticationKey{}, authentication)
}

func AuthenticationFrom(ctx context.Context) (*Authentication, bool) {
	authentication, ok := ctx.Value(authenticationKey{}).(*Authentication)
	return authentication, ok && authentication != nil
}

// PrincipalFrom возвращает личность запроса, если она установлена.
func PrincipalFrom(ctx context.Context) (*model.Principal, bool) {
	authentication, ok := AuthenticationFrom(ctx)
	if !ok || !authentication.Authenticated() {
		return nil, false
	}
	return authentication.Principal, true
}

// WithExceptionMessage сохраняет сообщение, которое вернется клиенту при отказе в доступе.
func WithExceptionMessage(ctx context.Context, message string) context.Context {
	return context.WithValue(ctx, exceptionMessageKey{}, message)
}

func ExceptionMessage(ctx context.Context) (string, bool) {
	message, ok := ctx.Value(exceptionMessageKey{}).(string)
	return message, ok
}
