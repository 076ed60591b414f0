package model

import (
	"errors"
	"fmt"
)

var (
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenRevoked          = errors.New("token is not bound to a live identity")

	ErrIdentityNotFound      = errors.New("identity not found")
	ErrCredentialMismatch    = errors.New("credential mismatch")
	ErrUnknownAuthentication = errors.New("unknown authentication error")
	ErrAuthorizationDenied   = errors.New("authorization denied")
)

// TokenErrorKind различает причины отказа в токене.
type TokenErrorKind int

const (
	TokenExpired TokenErrorKind = iota + 1
	TokenMalformed
	TokenSignatureInvalid
	TokenRevoked
)

func (kind TokenErrorKind) sentinel() error {
	switch kind {
	case TokenExpired:
		return ErrTokenExpired
	case TokenSignatureInvalid:
		return ErrTokenSignatureInvalid
	case TokenRevoked:
		return ErrTokenRevoked
	default:
		return ErrTokenMalformed
	}
}

// TokenError: ошибка проверки токена. Всегда переводится в ответ 401.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func NewTokenError(kind TokenErrorKind, err error) *TokenError {
	return &TokenError{Kind: kind, Err: err}
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return e.Kind.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind.sentinel(), e.Err)
}

func (e *TokenError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// IsTokenError сообщает, является ли err ошибкой проверки токена.
func IsTokenError(err error) bool {
	var tokenErr *TokenError
	return errors.As(err, &tokenErr)
}

// AuthenticationError: неудачный вход по логину и паролю.
type AuthenticationError struct {
	Code ErrorCode
	Err  error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Code)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ClassifyAuthenticationError сопоставляет ошибку проверки учетных данных с ErrorCode.
func ClassifyAuthenticationError(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrIdentityNotFound):
		return ItemNotExist
	case errors.Is(err, ErrCredentialMismatch):
		return WrongPassword
	default:
		return UnknownError
	}
}

// DataNotFoundError: тело запроса на вход не удалось разобрать.
type DataNotFoundError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DataNotFoundError) Unwrap() error {
	return e.Err
}

// AuthorizationDeniedError: у личности нет нужных полномочий.
type AuthorizationDeniedError struct {
	Authority string
	Username  string
}

func (e *AuthorizationDeniedError) Error() string {
	if e.Username == "" {
		return fmt.Sprintf("access denied: authentication required for %q", e.Authority)
	}
	return fmt.Sprintf("access denied: %q lacks %q", e.Username, e.Authority)
}

func (e *AuthorizationDeniedError) Unwrap() error {
	return ErrAuthorizationDenied
}
