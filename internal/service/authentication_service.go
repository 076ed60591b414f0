package service

import (
	"PeerFund_Auth/internal/logger"
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/ports"
	"PeerFund_Auth/internal/security"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// AuthenticationService проверяет токены запроса, находит личность
// и при необходимости ротирует refresh токен.
type AuthenticationService struct {
	MemberRepository ports.MemberRepositoryInterface
	JWTService       ports.JWTServiceInterface
	Notifier         ports.RotationNotifier
}

func NewAuthenticationService(
	memberRepository ports.MemberRepositoryInterface,
	jwtService ports.JWTServiceInterface,
	notifier ports.RotationNotifier,
) *AuthenticationService {
	return &AuthenticationService{
		MemberRepository: memberRepository,
		JWTService:       jwtService,
		Notifier:         notifier,
	}
}

// Authenticate переводит классифицированный запрос в Validated или PassThrough.
// Ошибки проверки токенов возвращаются как *model.TokenError.
func (service *AuthenticationService) Authenticate(ctx context.Context, mode security.Mode, pair model.TokenPair) (*security.Authentication, error) {
	switch mode {
	case security.AccessOnly:
		return service.authenticateAccess(ctx, pair.Access)
	case security.AccessAndRefresh:
		if !pair.HasRefresh() {
			return nil, model.NewTokenError(model.TokenMalformed, errors.New("refresh token is missing"))
		}
		return service.authenticateWithRefresh(ctx, pair.Access, pair.RefreshToken())
	default:
		return &security.Authentication{Mode: security.NoAuth, State: security.PassThrough}, nil
	}
}

// authenticateAccess: access токен должен быть валиден и не просрочен, ротации нет.
func (service *AuthenticationService) authenticateAccess(ctx context.Context, accessToken string) (*security.Authentication, error) {
	const op = "service.authentication.authenticateAccess"
	log := logger.From(ctx)

	inspection := service.JWTService.Inspect(accessToken)
	if err := inspection.TokenError(); err != nil {
		log.Info("access_token_rejected", slog.String("op", op), slog.String("state", inspection.State.String()))
		return nil, err
	}

	member, err := service.resolve(ctx, op, func() (*model.Member, error) {
		return service.MemberRepository.FindByUsername(ctx, inspection.Claims.Username)
	})
	if err != nil {
		return nil, err
	}

	return &security.Authentication{
		Mode:      security.AccessOnly,
		State:     security.Validated,
		Principal: model.NewPrincipal(member),
	}, nil
}

// authenticateWithRefresh: просроченный access токен допустим, просроченный refresh токен нет.
// Access токен выпускается заново всегда, refresh только когда до его истечения меньше порога.
func (service *AuthenticationService) authenticateWithRefresh(ctx context.Context, accessToken string, refreshToken string) (*security.Authentication, error) {
	const op = "service.authentication.authenticateWithRefresh"
	log := logger.From(ctx)

	accessInspection := service.JWTService.Inspect(accessToken)
	if accessInspection.State == security.TokenInvalid {
		log.Info("access_token_rejected", slog.String("op", op), slog.String("state", accessInspection.State.String()))
		return nil, accessInspection.TokenError()
	}

	refreshInspection := service.JWTService.Inspect(refreshToken)
	if err := refreshInspection.TokenError(); err != nil {
		log.Info("refresh_token_rejected", slog.String("op", op), slog.String("state", refreshInspection.State.String()))
		return nil, err
	}

	member, err := service.resolve(ctx, op, func() (*model.Member, error) {
		return service.MemberRepository.FindByStoredRefreshToken(ctx, refreshToken)
	})
	if err != nil {
		return nil, err
	}

	authentication := &security.Authentication{
		Mode:      security.AccessAndRefresh,
		State:     security.Validated,
		Principal: model.NewPrincipal(member),
	}

	if service.JWTService.ExpiresWithin(refreshToken, service.JWTService.Policy().RotationThreshold) {
		reissued, err := service.rotateRefreshToken(ctx, member.Username)
		if err != nil {
			return nil, err
		}
		authentication.ReissuedRefresh = reissued
	}

	reissuedAccess, err := service.JWTService.CreateAccessToken(member.Username)
	if err != nil {
		log.Error("access_token_reissue_failed", slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	authentication.ReissuedAccess = reissuedAccess
	log.Debug("access_token_reissued", slog.String("op", op), slog.String("username", member.Username))

	return authentication, nil
}

func (service *AuthenticationService) rotateRefreshToken(ctx context.Context, username string) (string, error) {
	const op = "service.authentication.rotateRefreshToken"
	log := logger.From(ctx)

	refreshToken, err := service.JWTService.CreateRefreshToken()
	if err != nil {
		log.Error("refresh_token_issue_failed", slog.String("op", op), slog.String("err", err.Error()))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := service.MemberRepository.UpdateStoredRefreshToken(ctx, username, refreshToken); err != nil {
		if errors.Is(err, model.ErrIdentityNotFound) {
			return "", model.NewTokenError(model.TokenRevoked, err)
		}
		log.Error("refresh_token_store_failed", slog.String("op", op), slog.String("err", err.Error()))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("refresh_token_rotated", slog.String("op", op), slog.String("username", username))
	if service.Notifier != nil {
		service.Notifier.NotifyRotation(ctx, username)
	}

	return refreshToken, nil
}

// resolve превращает отсутствие личности для токена в ошибку токена,
// прочие ошибки хранилища логирует и возвращает как есть.
func (service *AuthenticationService) resolve(ctx context.Context, op string, find func() (*model.Member, error)) (*model.Member, error) {
	member, err := find()
	if err == nil {
		return member, nil
	}
	if errors.Is(err, model.ErrIdentityNotFound) {
		logger.From(ctx).Info("token_identity_not_found", slog.String("op", op))
		return nil, model.NewTokenError(model.TokenRevoked, err)
	}

	logger.From(ctx).Error("member_lookup_failed", slog.String("op", op), slog.String("err", err.Error()))
	return nil, fmt.Errorf("%s: %w", op, err)
}
