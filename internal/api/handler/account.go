// internal/api/handler/account.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fintrack/internal/api/types"
	"fintrack/internal/cache"
	"fintrack/internal/domain"
	"fintrack/internal/serialize"
	"fintrack/internal/service"
	"fintrack/internal/util"
)

// AccountHandler handles HTTP requests related to account operations.
type AccountHandler struct {
	identity service.IdentityResolver
	service  service.AccountService
	views    *cache.ViewCache
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(identity service.IdentityResolver, svc service.AccountService, views *cache.ViewCache, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		identity: identity,
		service:  svc,
		views:    views,
		logger:   logger,
	}
}

// currentUser resolves the authenticated user once per request from the
// identity placed in the context by the auth middleware.
func (h *AccountHandler) currentUser(r *http.Request) (*domain.User, error) {
	externalID, ok := ExternalIDFromContext(r.Context())
	if !ok {
		return nil, util.ErrUnauthorized
	}
	return h.identity.Resolve(r.Context(), externalID)
}

// CreateAccount handles the create account request.
// POST /accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	var input service.CreateAccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, err := h.service.CreateAccount(r.Context(), user, input)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, types.OK(serialize.FromAccount(account)))
}

// GetUserAccounts handles the account listing request. The rendered listing
// is cached per user and invalidated by mutating operations.
// GET /accounts
func (h *AccountHandler) GetUserAccounts(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	if view, ok := h.views.GetDashboard(user.ID); ok {
		if accounts, ok := view.([]serialize.AccountWithCount); ok {
			respondWithJSON(w, h.logger, http.StatusOK, types.OK(accounts))
			return
		}
	}

	accounts, err := h.service.GetUserAccounts(r.Context(), user)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	serialized := serialize.FromAccounts(accounts)
	h.views.SetDashboard(user.ID, serialized)

	respondWithJSON(w, h.logger, http.StatusOK, types.OK(serialized))
}

// UpdateDefaultAccount handles the default-account switch request.
// PATCH /accounts/{accountID}/default
func (h *AccountHandler) UpdateDefaultAccount(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, err := h.service.UpdateDefaultAccount(r.Context(), user, accountID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.OK(serialize.FromAccount(account)))
}

// GetAccountWithTransactions handles the account detail request: the account
// plus its full transaction history ordered by date descending. The rendered
// view is cached per account and invalidated by mutating operations.
// GET /accounts/{accountID}
func (h *AccountHandler) GetAccountWithTransactions(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if view, ok := h.views.GetAccount(accountID); ok {
		if detail, ok := view.(serialize.AccountDetail); ok && detail.UserID == user.ID {
			respondWithJSON(w, h.logger, http.StatusOK, types.OK(detail))
			return
		}
	}

	account, transactions, err := h.service.GetAccountWithTransactions(r.Context(), user, accountID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	detail := serialize.FromAccountDetail(account, transactions)
	h.views.SetAccount(accountID, detail)

	respondWithJSON(w, h.logger, http.StatusOK, types.OK(detail))
}

// GetAccountChart handles the aggregation request for an account's chart.
// GET /accounts/{accountID}/chart?range=7D|1M|3M|6M|ALL
func (h *AccountHandler) GetAccountChart(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	rng := service.ChartRange(r.URL.Query().Get("range"))
	if rng == "" {
		rng = service.ChartRange1M
	}
	if !rng.Valid() {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	_, transactions, err := h.service.GetAccountWithTransactions(r.Context(), user, accountID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	chart := service.BuildChartData(transactions, rng, time.Now())
	respondWithJSON(w, h.logger, http.StatusOK, types.OK(chart))
}
