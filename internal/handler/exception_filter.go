package handler

import (
	"PeerFund_Auth/internal/logger"
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/security"
	"log/slog"
	"net/http"
)

// ExceptionTranslator переводит ошибки токенов в ответ 401.
// Остальные ошибки логируются и завершают запрос с 500.
type ExceptionTranslator struct{}

func (translator ExceptionTranslator) Wrap(filter FilterFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			err := filter(writer, request, next)
			if err == nil {
				return
			}

			log := logger.From(request.Context())
			if model.IsTokenError(err) {
				log.Info("token_rejected", slog.String("err", err.Error()))
				writeJSON(writer, http.StatusUnauthorized, &ExceptionResponse{
					Status:  http.StatusUnauthorized,
					Message: security.ExpiredExceptionPrefix + "_" + err.Error(),
				})
				return
			}

			log.Error("authentication_failed", slog.String("err", err.Error()))
			http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		})
	}
}

// JWTMiddleware собирает фильтр аутентификации вместе с переводом его ошибок.
func JWTMiddleware(authenticator RequestAuthenticator) func(http.Handler) http.Handler {
	filter := NewJWTAuthenticationFilter(authenticator)
	return ExceptionTranslator{}.Wrap(filter.Filter)
}
