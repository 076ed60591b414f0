package model

// TokenPair содержит access токен запроса и, если клиент его прислал, refresh токен.
type TokenPair struct {
	Access  string
	Refresh *string
}

// NewTokenPair собирает пару; пустой refresh означает его отсутствие.
func NewTokenPair(access string, refresh string) TokenPair {
	if refresh == "" {
		return TokenPair{Access: access}
	}
	return TokenPair{Access: access, Refresh: &refresh}
}

// HasRefresh сообщает, пришел ли refresh токен вместе с access токеном.
func (pair TokenPair) HasRefresh() bool {
	return pair.Refresh != nil
}

// RefreshToken возвращает refresh токен или пустую строку.
func (pair TokenPair) RefreshToken() string {
	if pair.Refresh == nil {
		return ""
	}
	return *pair.Refresh
}

// LoginResult содержит выданную при входе пару токенов.
type LoginResult struct {
	Principal    *Principal
	AccessToken  string
	RefreshToken string
}
