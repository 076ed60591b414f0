package service

import (
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/ports"
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost задает стоимость bcrypt для новых паролей.
const PasswordCost = 10

// PasswordAuthenticationManager сверяет пароль с bcrypt хешем из хранилища.
type PasswordAuthenticationManager struct {
	MemberRepository ports.MemberRepositoryInterface
}

func NewPasswordAuthenticationManager(memberRepository ports.MemberRepositoryInterface) *PasswordAuthenticationManager {
	return &PasswordAuthenticationManager{MemberRepository: memberRepository}
}

func (manager *PasswordAuthenticationManager) Authenticate(ctx context.Context, username string, password string) (*model.Principal, error) {
	member, err := manager.MemberRepository.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrIdentityNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", model.ErrUnknownAuthentication, err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("пользователь %q: %w", username, model.ErrCredentialMismatch)
		}
		return nil, fmt.Errorf("%w: %w", model.ErrUnknownAuthentication, err)
	}

	return model.NewPrincipal(member), nil
}

// HashPassword возвращает bcrypt хеш пароля.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования: %w", err)
	}
	return string(hashed), nil
}
