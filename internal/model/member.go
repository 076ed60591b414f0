package model

import (
	"database/sql"

	"github.com/lib/pq"
)

// Member: учетная запись пользователя вместе с текущим refresh токеном.
type Member struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	Password     string         `db:"password"`
	RefreshToken sql.NullString `db:"refresh_token"`
	Roles        pq.StringArray `db:"roles"`
}

// Principal: аутентифицированная личность, живет только в рамках одного запроса.
type Principal struct {
	Username    string
	Authorities []string
}

// NewPrincipal строит Principal из учетной записи.
func NewPrincipal(member *Member) *Principal {
	authorities := make([]string, len(member.Roles))
	copy(authorities, member.Roles)

	return &Principal{
		Username:    member.Username,
		Authorities: authorities,
	}
}

func (principal *Principal) HasAuthority(authority string) bool {
	if principal == nil {
		return false
	}
	for _, granted := range principal.Authorities {
		if granted == authority {
			return true
		}
	}
	return false
}
