package security

import "time"

const (
	AccessTokenHeader  = "Authorization"
	RefreshTokenHeader = "Authorization-refresh"
	TokenPrefix        = "Bearer "

	SubjectAccess  = "ACCESS"
	SubjectRefresh = "REFRESH"

	// ExpiredExceptionPrefix предваряет сообщение в ответе 401.
	ExpiredExceptionPrefix = "EXPIRED_EXCEPTION"

	DefaultAccessTokenTTL    = 30 * time.Minute
	DefaultRefreshTokenTTL   = 14 * 24 * time.Hour
	DefaultRotationThreshold = 7 * 24 * time.Hour
)

// Policy задает время жизни токенов и порог ротации refresh токена.
type Policy struct {
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	RotationThreshold time.Duration
	Issuer            string
}

// DefaultPolicy: access 30 минут, refresh 14 дней, ротация при остатке меньше 7 дней.
func DefaultPolicy() Policy {
	return Policy{
		AccessTokenTTL:    DefaultAccessTokenTTL,
		RefreshTokenTTL:   DefaultRefreshTokenTTL,
		RotationThreshold: DefaultRotationThreshold,
	}
}

// WithDefaults заполняет нулевые значения значениями по умолчанию.
func (policy Policy) WithDefaults() Policy {
	defaults := DefaultPolicy()
	if policy.AccessTokenTTL <= 0 {
		policy.AccessTokenTTL = defaults.AccessTokenTTL
	}
	if policy.RefreshTokenTTL <= 0 {
		policy.RefreshTokenTTL = defaults.RefreshTokenTTL
	}
	if policy.RotationThreshold <= 0 {
		policy.RotationThreshold = defaults.RotationThreshold
	}
	return policy
}
