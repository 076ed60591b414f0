package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const AuthorityAdmin = "ROLE_ADMIN"

// RegisterRoutes подключает вход и защищенные маршруты к роутеру.
// Фильтр аутентификации стоит на всех маршрутах, кроме /login и /health.
func RegisterRoutes(router chi.Router, authenticationHandler *AuthenticationHandler, authenticator RequestAuthenticator) {
	responder := AccessDeniedResponder{}

	router.Get("/health", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	router.Post("/login", authenticationHandler.Login)

	router.Route("/api", func(r chi.Router) {
		r.Use(JWTMiddleware(authenticator))

		r.Group(func(r chi.Router) {
			r.Use(ExceptionMessage("authentication required"))
			r.Use(responder.RequireAuthenticated())
			r.Get("/me", authenticationHandler.Me)
		})
		r.Group(func(r chi.Router) {
			r.Use(ExceptionMessage("admin authority required"))
			r.Use(responder.RequireAuthority(AuthorityAdmin))
			r.Get("/admin/ping", authenticationHandler.AdminPing)
		})
	})
}
