package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Karan-parmar-007/aurifi-backend/internal/application/service"
	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/entity"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/logger"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// TransactionHandler handles HTTP requests for transaction CRUD
type TransactionHandler struct {
	service  *service.TransactionService
	validate *validator.Validate
	logger   logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *service.TransactionService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		service:  service,
		validate: validator.New(),
		logger:   log,
	}
}

// CreateTransaction handles the creation of a new transaction
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	h.logger.Info("Handling create transaction request", map[string]interface{}{
		"request_id": requestID,
		"method":     r.Method,
		"path":       r.URL.Path,
	})

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("Missing required fields", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Missing required fields",
			"owner_id, name and base_file_path are required", http.StatusBadRequest, requestID)
		return
	}

	if _, err := uuid.Parse(req.OwnerID); err != nil {
		h.logger.Warn("Invalid owner id", map[string]interface{}{
			"request_id": requestID,
			"owner_id":   req.OwnerID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid owner id",
			"owner_id must be a valid UUID", http.StatusBadRequest, requestID)
		return
	}

	id := h.service.Create(r.Context(), req.OwnerID, req.Name, req.BaseFilePath,
		req.PrimaryAssetClass, req.SecondaryAssetClass)
	if id == "" {
		sendErrorResponse(w, h.logger, "Internal server error",
			"The transaction could not be created", http.StatusInternalServerError, requestID)
		return
	}

	h.logger.Info("Transaction created successfully", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateTransactionResponse{ID: id})
}

// GetTransaction handles retrieving a transaction by ID
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	h.logger.Info("Handling get transaction request", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	if _, err := uuid.Parse(id); err != nil {
		sendErrorResponse(w, h.logger, "Invalid transaction id",
			"id must be a valid UUID", http.StatusBadRequest, requestID)
		return
	}

	tx := h.service.Get(r.Context(), id)
	if tx == nil {
		sendErrorResponse(w, h.logger, "Transaction not found",
			"The requested transaction could not be found", http.StatusNotFound, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTransactionResponse(tx))
}

// UpdateTransaction handles a partial update of a transaction. The body
// is decoded into the patch type, which has no id or owner_id fields, so
// those keys are silently ignored when present.
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	h.logger.Info("Handling update transaction request", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	if _, err := uuid.Parse(id); err != nil {
		sendErrorResponse(w, h.logger, "Invalid transaction id",
			"id must be a valid UUID", http.StatusBadRequest, requestID)
		return
	}

	var patch entity.TransactionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	if patch.IsEmpty() {
		sendErrorResponse(w, h.logger, "No updatable fields",
			"The request body contains no updatable fields", http.StatusBadRequest, requestID)
		return
	}

	if !h.service.Update(r.Context(), id, &patch) {
		sendErrorResponse(w, h.logger, "Transaction not updated",
			"The transaction could not be found or updated", http.StatusNotFound, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusResponse{Status: "updated"})
}

// DeleteTransaction handles removing a transaction
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	h.logger.Info("Handling delete transaction request", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	if _, err := uuid.Parse(id); err != nil {
		sendErrorResponse(w, h.logger, "Invalid transaction id",
			"id must be a valid UUID", http.StatusBadRequest, requestID)
		return
	}

	if !h.service.Delete(r.Context(), id) {
		sendErrorResponse(w, h.logger, "Transaction not deleted",
			"The transaction could not be found or deleted", http.StatusNotFound, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUserTransactions handles listing all transactions for a user
func (h *TransactionHandler) ListUserTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	ownerID := mux.Vars(r)["id"]

	h.logger.Info("Handling list user transactions request", map[string]interface{}{
		"request_id": requestID,
		"owner_id":   ownerID,
	})

	if _, err := uuid.Parse(ownerID); err != nil {
		sendErrorResponse(w, h.logger, "Invalid user id",
			"id must be a valid UUID", http.StatusBadRequest, requestID)
		return
	}

	txs := h.service.ListByOwner(r.Context(), ownerID)

	resp := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toTransactionResponse(tx))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RegisterRoutes registers the transaction handler routes
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	router.HandleFunc("/transactions/{id}", h.GetTransaction).Methods("GET")
	router.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PATCH")
	router.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	router.HandleFunc("/users/{id}/transactions", h.ListUserTransactions).Methods("GET")

	h.logger.Info("Transaction routes registered", map[string]interface{}{
		"routes": []string{
			"POST /transactions",
			"GET /transactions/{id}",
			"PATCH /transactions/{id}",
			"DELETE /transactions/{id}",
			"GET /users/{id}/transactions",
		},
	})
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	json.NewEncoder(w).Encode(resp)
}
