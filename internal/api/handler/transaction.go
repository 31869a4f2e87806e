// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fintrack/internal/api/types"
	"fintrack/internal/domain"
	"fintrack/internal/serialize"
	"fintrack/internal/service"
	"fintrack/internal/util"
)

// TransactionHandler handles HTTP requests related to transaction operations.
type TransactionHandler struct {
	identity service.IdentityResolver
	service  service.TransactionService
	logger   *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(identity service.IdentityResolver, svc service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		identity: identity,
		service:  svc,
		logger:   logger,
	}
}

func (h *TransactionHandler) currentUser(r *http.Request) (*domain.User, error) {
	externalID, ok := ExternalIDFromContext(r.Context())
	if !ok {
		return nil, util.ErrUnauthorized
	}
	return h.identity.Resolve(r.Context(), externalID)
}

// CreateTransaction handles the create transaction request.
// POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	var input service.CreateTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transaction, err := h.service.CreateTransaction(r.Context(), user, input)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, types.OK(serialize.FromTransaction(transaction)))
}

// DeleteTransaction handles the single-transaction delete request.
// DELETE /transactions/{transactionID}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteTransaction(r.Context(), user, transactionID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.OK(map[string]bool{"deleted": true}))
}

// BulkDeleteRequest represents the request body for bulk deletion.
type BulkDeleteRequest struct {
	TransactionIDs []uuid.UUID `json:"transaction_ids"`
}

// BulkDeleteTransactions handles the bulk delete request. Ids that don't
// match or aren't owned by the caller are silently ignored.
// POST /transactions/bulk-delete
func (h *TransactionHandler) BulkDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if len(req.TransactionIDs) == 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.BulkDeleteTransactions(r.Context(), user, req.TransactionIDs); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.OK(map[string]bool{"deleted": true}))
}
