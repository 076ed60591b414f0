package repository

import (
	"PeerFund_Auth/internal/model"
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// MemoryMemberRepository: хранилище в памяти для драйвера "memory" и тестов.
type MemoryMemberRepository struct {
	mu      sync.RWMutex
	nextID  int64
	members map[string]*model.Member
}

func NewMemoryMemberRepository() *MemoryMemberRepository {
	return &MemoryMemberRepository{members: make(map[string]*model.Member)}
}

func cloneMember(member *model.Member) *model.Member {
	clone := *member
	clone.Roles = append(clone.Roles[:0:0], member.Roles...)
	return &clone
}

func (repository *MemoryMemberRepository) Save(_ context.Context, member *model.Member) (*model.Member, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.members[member.Username]; ok {
		return nil, fmt.Errorf("пользователь %q уже существует", member.Username)
	}
	if len(member.Roles) == 0 {
		member.Roles = []string{"ROLE_USER"}
	}

	repository.nextID++
	member.ID = repository.nextID
	repository.members[member.Username] = cloneMember(member)

	return member, nil
}

func (repository *MemoryMemberRepository) FindByUsername(_ context.Context, username string) (*model.Member, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	member, ok := repository.members[username]
	if !ok {
		return nil, fmt.Errorf("пользователь %q: %w", username, model.ErrIdentityNotFound)
	}

	return cloneMember(member), nil
}

func (repository *MemoryMemberRepository) FindByStoredRefreshToken(_ context.Context, refreshToken string) (*model.Member, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, member := range repository.members {
		if member.RefreshToken.Valid && member.RefreshToken.String == refreshToken {
			return cloneMember(member), nil
		}
	}

	return nil, fmt.Errorf("владелец refresh токена: %w", model.ErrIdentityNotFound)
}

func (repository *MemoryMemberRepository) UpdateStoredRefreshToken(_ context.Context, username string, refreshToken string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	member, ok := repository.members[username]
	if !ok {
		return fmt.Errorf("пользователь %q: %w", username, model.ErrIdentityNotFound)
	}
	member.RefreshToken = sql.NullString{String: refreshToken, Valid: true}

	return nil
}
