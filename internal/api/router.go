// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(accountHandler *handler.AccountHandler, transactionHandler *handler.TransactionHandler, jwtSecret string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Everything below requires an authenticated external identity.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwtSecret))

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", accountHandler.CreateAccount)
			r.Get("/", accountHandler.GetUserAccounts)
			r.Get("/{accountID}", accountHandler.GetAccountWithTransactions)
			r.Patch("/{accountID}/default", accountHandler.UpdateDefaultAccount)
			r.Get("/{accountID}/chart", accountHandler.GetAccountChart)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/bulk-delete", transactionHandler.BulkDeleteTransactions)
			r.Delete("/{transactionID}", transactionHandler.DeleteTransaction)
		})
	})

	return r
}
