package handler

import (
	"PeerFund_Auth/internal/logger"
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/security"
	"log/slog"
	"net/http"
)

// AccessDeniedResponder отвечает на отказ в доступе сообщением,
// сохраненным в контексте запроса выше по цепочке, а не текстом самой ошибки.
type AccessDeniedResponder struct{}

func (responder AccessDeniedResponder) Handle(writer http.ResponseWriter, request *http.Request, denied *model.AuthorizationDeniedError) {
	logger.From(request.Context()).Warn("access_denied", slog.String("err", denied.Error()))

	message, ok := security.ExceptionMessage(request.Context())
	if !ok {
		message = model.UnknownError.String()
	}

	writeJSON(writer, http.StatusForbidden, &MessageResponse{Success: false, Message: message})
}

// RequireAuthenticated пропускает только запросы с установленной личностью.
func (responder AccessDeniedResponder) RequireAuthenticated() func(http.Handler) http.Handler {
	return responder.RequireAuthority("")
}

// RequireAuthority пропускает запросы личности с указанным полномочием.
// Пустое authority означает «любая аутентифицированная личность».
func (responder AccessDeniedResponder) RequireAuthority(authority string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal, ok := security.PrincipalFrom(request.Context())
			if !ok {
				responder.Handle(writer, request, &model.AuthorizationDeniedError{Authority: authority})
				return
			}
			if authority != "" && !principal.HasAuthority(authority) {
				responder.Handle(writer, request, &model.AuthorizationDeniedError{Authority: authority, Username: principal.Username})
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// ExceptionMessage задает сообщение, которое получит клиент при отказе в доступе.
func ExceptionMessage(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := security.WithExceptionMessage(request.Context(), message)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
