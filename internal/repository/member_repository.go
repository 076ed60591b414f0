package repository

import (
	"PeerFund_Auth/internal"
	"PeerFund_Auth/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// MemberRepository хранит учетные записи в таблице members.
// На одну учетную запись приходится ровно один действующий refresh токен.
type MemberRepository struct {
	*internal.Database
}

func NewMemberRepository(database *internal.Database) *MemberRepository {
	return &MemberRepository{database}
}

const selectMember = `SELECT id, username, password, refresh_token, roles FROM members`

func (repository *MemberRepository) FindByUsername(ctx context.Context, username string) (*model.Member, error) {
	var member model.Member

	err := repository.DB.GetContext(ctx, &member, selectMember+` WHERE username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь %q: %w", username, model.ErrIdentityNotFound)
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	return &member, nil
}

func (repository *MemberRepository) FindByStoredRefreshToken(ctx context.Context, refreshToken string) (*model.Member, error) {
	var member model.Member

	err := repository.DB.GetContext(ctx, &member, selectMember+` WHERE refresh_token = $1`, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("владелец refresh токена: %w", model.ErrIdentityNotFound)
		}
		return nil, fmt.Errorf("ошибка поиска пользователя по refresh токену: %w", err)
	}

	return &member, nil
}

// UpdateStoredRefreshToken перезаписывает refresh токен одним UPDATE,
// при конкурентной ротации побеждает последняя запись.
func (repository *MemberRepository) UpdateStoredRefreshToken(ctx context.Context, username string, refreshToken string) error {
	query := `UPDATE members SET refresh_token = $1 WHERE username = $2`

	result, err := repository.DB.ExecContext(ctx, query, refreshToken, username)
	if err != nil {
		return fmt.Errorf("не удалось обновить рефреш токен: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось проверить, обновлен ли токен: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("пользователь %q: %w", username, model.ErrIdentityNotFound)
	}

	return nil
}

// Save создает учетную запись и возвращает ее с присвоенным id.
func (repository *MemberRepository) Save(ctx context.Context, member *model.Member) (*model.Member, error) {
	if len(member.Roles) == 0 {
		member.Roles = []string{"ROLE_USER"}
	}

	query := `INSERT INTO members (username, password, roles)
			  VALUES (:username, :password, :roles)
			  RETURNING id`

	rows, err := repository.DB.NamedQueryContext(ctx, query, member)
	if err != nil {
		return nil, fmt.Errorf("ошибка вставки пользователя: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&member.ID); err != nil {
			return nil, fmt.Errorf("ошибка чтения id пользователя: %w", err)
		}
	}

	return member, rows.Err()
}
