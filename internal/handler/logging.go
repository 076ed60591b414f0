package handler

import (
	"PeerFund_Auth/internal/logger"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logging кладет в контекст логгер запроса и пишет итог запроса.
func Logging(l *slog.Logger) func(http.Handler) http.Handler {
	if l == nil {
		l = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestLogger := l
			if requestID := middleware.GetReqID(request.Context()); requestID != "" {
				requestLogger = requestLogger.With(slog.String("request_id", requestID))
			}
			request = request.WithContext(logger.Into(request.Context(), requestLogger))

			wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(wrapped, request)

			requestLogger.LogAttrs(request.Context(), slog.LevelInfo, "http",
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.Int("status", wrapped.Status()),
				slog.Duration("dur", time.Since(start)),
				slog.Int("bytes", wrapped.BytesWritten()),
			)
		})
	}
}
