package handler

import (
	"PeerFund_Auth/internal/logger"
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/security"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// CredentialLogin выдает пару токенов по логину и паролю.
type CredentialLogin interface {
	Login(ctx context.Context, username string, password string) (*model.LoginResult, error)
}

type AuthenticationHandler struct {
	CredentialAuthenticator CredentialLogin
}

// LoginRequest содержит логин и пароль
// swagger:model
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CurrentMemberResponse содержит имя и полномочия текущего пользователя
// swagger:model
type CurrentMemberResponse struct {
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}

func NewAuthenticationHandler(credentialAuthenticator CredentialLogin) *AuthenticationHandler {
	return &AuthenticationHandler{CredentialAuthenticator: credentialAuthenticator}
}

func loginFailed(code model.ErrorCode) *MessageResponse {
	return &MessageResponse{Success: false, Message: fmt.Sprintf("login failed: %s", code)}
}

func decodeLoginRequest(request *http.Request) (*LoginRequest, error) {
	var loginRequest LoginRequest
	if err := json.NewDecoder(request.Body).Decode(&loginRequest); err != nil {
		return nil, &model.DataNotFoundError{Code: model.ItemNotExist, Message: "member does not exist", Err: err}
	}
	if loginRequest.Username == "" || loginRequest.Password == "" {
		return nil, &model.DataNotFoundError{Code: model.ItemNotExist, Message: "username and password are required"}
	}

	return &loginRequest, nil
}

// Login проверяет логин и пароль и выдает пару токенов
// @Summary Вход
// @Description Проверяет учетные данные, сохраняет новый refresh токен и возвращает оба токена в заголовках Authorization и Authorization-refresh.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "логин и пароль"
// @Success 200 {object} MessageResponse "login success"
// @Failure 400 {object} MessageResponse "login failed: ITEM_NOT_EXIST"
// @Failure 401 {object} MessageResponse "login failed: WRONG_PASSWORD"
// @Router /login [post]
func (handler *AuthenticationHandler) Login(writer http.ResponseWriter, request *http.Request) {
	log := logger.From(request.Context())

	loginRequest, err := decodeLoginRequest(request)
	if err != nil {
		var dataErr *model.DataNotFoundError
		errors.As(err, &dataErr)
		log.Info("login_payload_invalid", slog.String("err", err.Error()))
		writeJSON(writer, http.StatusBadRequest, loginFailed(dataErr.Code))
		return
	}

	result, err := handler.CredentialAuthenticator.Login(request.Context(), loginRequest.Username, loginRequest.Password)
	if err != nil {
		code := model.UnknownError
		var authErr *model.AuthenticationError
		if errors.As(err, &authErr) {
			code = authErr.Code
		}
		writeJSON(writer, http.StatusUnauthorized, loginFailed(code))
		return
	}

	security.SetAccessTokenHeader(writer, result.AccessToken)
	security.SetRefreshTokenHeader(writer, result.RefreshToken)
	writeJSON(writer, http.StatusOK, &MessageResponse{Success: true, Message: "login success"})
}

// Me возвращает текущего пользователя
// @Summary Текущий пользователь
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} CurrentMemberResponse
// @Failure 401 {object} ExceptionResponse
// @Failure 403 {object} MessageResponse
// @Router /api/me [get]
func (handler *AuthenticationHandler) Me(writer http.ResponseWriter, request *http.Request) {
	principal, ok := security.PrincipalFrom(request.Context())
	if !ok {
		AccessDeniedResponder{}.Handle(writer, request, &model.AuthorizationDeniedError{})
		return
	}

	writeJSON(writer, http.StatusOK, &CurrentMemberResponse{
		Username:    principal.Username,
		Authorities: principal.Authorities,
	})
}

// AdminPing доступен только с полномочием ROLE_ADMIN.
func (handler *AuthenticationHandler) AdminPing(writer http.ResponseWriter, request *http.Request) {
	writeJSON(writer, http.StatusOK, &MessageResponse{Success: true, Message: "pong"})
}
