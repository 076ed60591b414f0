package service

import (
	"PeerFund_Auth/internal/logger"
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/ports"
	"context"
	"fmt"
	"log/slog"
)

// CredentialAuthenticator выдает первую пару токенов после проверки логина и пароля.
type CredentialAuthenticator struct {
	AuthenticationManager ports.AuthenticationManager
	MemberRepository      ports.MemberRepositoryInterface
	JWTService            ports.JWTServiceInterface
}

func NewCredentialAuthenticator(
	manager ports.AuthenticationManager,
	memberRepository ports.MemberRepositoryInterface,
	jwtService ports.JWTServiceInterface,
) *CredentialAuthenticator {
	return &CredentialAuthenticator{
		AuthenticationManager: manager,
		MemberRepository:      memberRepository,
		JWTService:            jwtService,
	}
}

// Login при неудаче возвращает *model.AuthenticationError, сохраненный refresh токен не меняется.
// При успехе прежний refresh токен перезаписывается новым.
func (authenticator *CredentialAuthenticator) Login(ctx context.Context, username string, password string) (*model.LoginResult, error) {
	const op = "service.credential.Login"
	log := logger.From(ctx)

	principal, err := authenticator.AuthenticationManager.Authenticate(ctx, username, password)
	if err != nil {
		code := model.ClassifyAuthenticationError(err)
		log.Info("login_failed", slog.String("op", op), slog.String("code", code.String()))
		return nil, &model.AuthenticationError{Code: code, Err: err}
	}

	accessToken, err := authenticator.JWTService.CreateAccessToken(principal.Username)
	if err != nil {
		return nil, authenticator.unexpected(ctx, op, fmt.Errorf("ошибка генерации access токена: %w", err))
	}

	refreshToken, err := authenticator.JWTService.CreateRefreshToken()
	if err != nil {
		return nil, authenticator.unexpected(ctx, op, fmt.Errorf("ошибка генерации refresh токена: %w", err))
	}

	if err := authenticator.MemberRepository.UpdateStoredRefreshToken(ctx, principal.Username, refreshToken); err != nil {
		return nil, authenticator.unexpected(ctx, op, fmt.Errorf("не удалось сохранить рефреш токен: %w", err))
	}

	log.Info("login_succeeded", slog.String("op", op), slog.String("username", principal.Username))
	return &model.LoginResult{
		Principal:    principal,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (authenticator *CredentialAuthenticator) unexpected(ctx context.Context, op string, err error) error {
	logger.From(ctx).Error("login_failed", slog.String("op", op), slog.String("err", err.Error()))
	return &model.AuthenticationError{Code: model.UnknownError, Err: err}
}
