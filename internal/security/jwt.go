package security

import (
	"errors"
	"fmt"
	"time"

	"PeerFund_Auth/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims: содержимое access и refresh токенов. У refresh токена нет username.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenState: результат проверки токена: валиден, просрочен или невалиден.
type TokenState int

const (
	TokenInvalid TokenState = iota
	TokenValid
	TokenExpired
)

func (state TokenState) String() string {
	switch state {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// Inspection: результат разбора токена. Claims заполнены для Valid и Expired.
type Inspection struct {
	State  TokenState
	Claims *Claims
	Err    error
}

// TokenError переводит результат разбора в ошибку домена; nil для валидного токена.
func (inspection Inspection) TokenError() error {
	switch inspection.State {
	case TokenValid:
		return nil
	case TokenExpired:
		return model.NewTokenError(model.TokenExpired, inspection.Err)
	default:
		if errors.Is(inspection.Err, jwt.ErrTokenSignatureInvalid) {
			return model.NewTokenError(model.TokenSignatureInvalid, inspection.Err)
		}
		return model.NewTokenError(model.TokenMalformed, inspection.Err)
	}
}

// JWTCodec выпускает и разбирает подписанные HS512 токены.
type JWTCodec struct {
	secretKey []byte
	policy    Policy
	now       func() time.Time
}

type CodecOption func(*JWTCodec)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) CodecOption {
	return func(codec *JWTCodec) {
		codec.now = now
	}
}

func NewJWTCodec(secretKey []byte, policy Policy, options ...CodecOption) (*JWTCodec, error) {
	if len(secretKey) == 0 {
		return nil, fmt.Errorf("пустой секретный ключ")
	}

	codec := &JWTCodec{
		secretKey: secretKey,
		policy:    policy.WithDefaults(),
		now:       time.Now,
	}
	for _, option := range options {
		option(codec)
	}

	return codec, nil
}

func (codec *JWTCodec) Policy() Policy {
	return codec.policy
}

func (codec *JWTCodec) CreateAccessToken(username string) (string, error) {
	now := codec.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   SubjectAccess,
			Issuer:    codec.policy.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(codec.policy.AccessTokenTTL)),
		},
	}

	return codec.sign(claims)
}

// CreateRefreshToken выпускает refresh токен без username.
// jti делает токены уникальными, даже если они выпущены в одну секунду.
func (codec *JWTCodec) CreateRefreshToken() (string, error) {
	now := codec.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   SubjectRefresh,
			Issuer:    codec.policy.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(codec.policy.RefreshTokenTTL)),
		},
	}

	return codec.sign(claims)
}

func (codec *JWTCodec) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(codec.secretKey)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}

// Inspect проверяет подпись и срок действия токена.
func (codec *JWTCodec) Inspect(tokenString string) Inspection {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return codec.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(codec.now),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil && token.Valid:
		return Inspection{State: TokenValid, Claims: claims}
	case errors.Is(err, jwt.ErrTokenExpired):
		// подпись уже проверена: jwt проверяет claims только после подписи
		return Inspection{State: TokenExpired, Claims: claims, Err: err}
	case err == nil:
		err = jwt.ErrTokenUnverifiable
	}

	return Inspection{State: TokenInvalid, Err: err}
}

// Parse возвращает claims валидного токена или *model.TokenError.
func (codec *JWTCodec) Parse(tokenString string) (*Claims, error) {
	inspection := codec.Inspect(tokenString)
	if err := inspection.TokenError(); err != nil {
		return nil, err
	}

	return inspection.Claims, nil
}

// IsStructurallyValid истинен и для просроченного, но верно подписанного токена.
func (codec *JWTCodec) IsStructurallyValid(tokenString string) bool {
	return codec.Inspect(tokenString).State != TokenInvalid
}

// IsExpired никогда не паникует; для невалидного токена возвращает false.
func (codec *JWTCodec) IsExpired(tokenString string) bool {
	return codec.Inspect(tokenString).State == TokenExpired
}

// ExpiresWithin сообщает, истекает ли токен раньше, чем через d.
func (codec *JWTCodec) ExpiresWithin(tokenString string, d time.Duration) bool {
	inspection := codec.Inspect(tokenString)
	if inspection.State == TokenInvalid || inspection.Claims.ExpiresAt == nil {
		return false
	}

	return inspection.Claims.ExpiresAt.Time.Before(codec.now().Add(d))
}

func (codec *JWTCodec) ExpiresWithinDays(tokenString string, days int) bool {
	return codec.ExpiresWithin(tokenString, time.Duration(days)*24*time.Hour)
}

// Username достает username из токена, в том числе из просроченного.
func (codec *JWTCodec) Username(tokenString string) (string, error) {
	inspection := codec.Inspect(tokenString)
	if inspection.State == TokenInvalid {
		return "", inspection.TokenError()
	}

	return inspection.Claims.Username, nil
}
