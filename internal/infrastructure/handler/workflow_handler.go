// Package handler internal/infrastructure/handler/workflow_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Karan-parmar-007/aurifi-backend/internal/application/service"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/logger"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// WorkflowHandler handles HTTP requests for the pipeline's single-field
// transaction mutations
type WorkflowHandler struct {
	service  *service.WorkflowService
	validate *validator.Validate
	logger   logger.Logger
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(service *service.WorkflowService, log logger.Logger) *WorkflowHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &WorkflowHandler{
		service:  service,
		validate: validator.New(),
		logger:   log,
	}
}

// decodeBody parses and validates a request body, sending the 400
// response itself when the body is malformed or incomplete.
func (h *WorkflowHandler) decodeBody(w http.ResponseWriter, r *http.Request, requestID string, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"path":       r.URL.Path,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return false
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("Missing required fields", map[string]interface{}{
			"request_id": requestID,
			"path":       r.URL.Path,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Missing required fields",
			"One or more required fields are missing", http.StatusBadRequest, requestID)
		return false
	}

	return true
}

// checkID validates the transaction id path variable, sending the 400
// response itself on failure.
func (h *WorkflowHandler) checkID(w http.ResponseWriter, requestID, id string) bool {
	if _, err := uuid.Parse(id); err != nil {
		sendErrorResponse(w, h.logger, "Invalid transaction id",
			"id must be a valid UUID", http.StatusBadRequest, requestID)
		return false
	}
	return true
}

// respond sends the uniform mutation result: 200 with a status body on
// success, 404 when the operation reported a negative result.
func (h *WorkflowHandler) respond(w http.ResponseWriter, requestID, status string, ok bool) {
	if !ok {
		sendErrorResponse(w, h.logger, "Transaction not updated",
			"The transaction could not be found or updated", http.StatusNotFound, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatusResponse{Status: status})
}

// RenameTransaction handles changing a transaction's name
func (h *WorkflowHandler) RenameTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var req RenameTransactionRequest
	if !h.checkID(w, requestID, id) || !h.decodeBody(w, r, requestID, &req) {
		return
	}

	h.respond(w, requestID, "renamed", h.service.Rename(r.Context(), id, req.Name))
}

// SetBaseFile handles recording the base file version reference
func (h *WorkflowHandler) SetBaseFile(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var req SetFileVersionRequest
	if !h.checkID(w, requestID, id) || !h.decodeBody(w, r, requestID, &req) {
		return
	}

	h.respond(w, requestID, "updated", h.service.SetBaseFile(r.Context(), id, req.VersionID))
}

// SetPreprocessedFile handles recording the preprocessed file version reference
func (h *WorkflowHandler) SetPreprocessedFile(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var req SetFileVersionRequest
	if !h.checkID(w, requestID, id) || !h.decodeBody(w, r, requestID, &req) {
		return
	}

	h.respond(w, requestID, "updated", h.service.SetPreprocessedFile(r.Context(), id, req.VersionID))
}

// UpdateCutoffDate handles storing the cutoff date
func (h *WorkflowHandler) UpdateCutoffDate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var req CutoffDateRequest
	if !h.checkID(w, requestID, id) || !h.decodeBody(w, r, requestID, &req) {
		return
	}

	h.respond(w, requestID, "updated", h.service.UpdateCutoffDate(r.Context(), id, req.CutoffDate))
}

// AddColumnDatatype handles declaring the datatype of a newly added column
func (h *WorkflowHandler) AddColumnDatatype(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var req ColumnDatatypeRequest
	if !h.checkID(w, requestID, id) || !h.decodeBody(w, r, requestID, &req) {
		return
	}

	h.respond(w, requestID, "updated",
		h.service.AddColumnDatatype(r.Context(), id, req.Column, req.Datatype))
}

// AddRootVersion handles appending a rule-application root version
func (h *WorkflowHandler) AddRootVersion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var req RootVersionRequest
	if !h.checkID(w, requestID, id) || !h.decodeBody(w, r, requestID, &req) {
		return
	}

	h.respond(w, requestID, "added",
		h.service.AddRuleApplicationRootVersion(r.Context(), id, req.VersionID))
}

// RemoveRootVersion handles removing a rule-application root version
func (h *WorkflowHandler) RemoveRootVersion(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)
	id := vars["id"]
	versionID := vars["versionID"]

	if !h.checkID(w, requestID, id) {
		return
	}

	h.respond(w, requestID, "removed",
		h.service.RemoveRuleApplicationRootVersion(r.Context(), id, versionID))
}

// RegisterRoutes registers the workflow handler routes
func (h *WorkflowHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions/{id}/name", h.RenameTransaction).Methods("PUT")
	router.HandleFunc("/transactions/{id}/base-file", h.SetBaseFile).Methods("PUT")
	router.HandleFunc("/transactions/{id}/preprocessed-file", h.SetPreprocessedFile).Methods("PUT")
	router.HandleFunc("/transactions/{id}/cutoff-date", h.UpdateCutoffDate).Methods("PUT")
	router.HandleFunc("/transactions/{id}/column-datatypes", h.AddColumnDatatype).Methods("POST")
	router.HandleFunc("/transactions/{id}/root-versions", h.AddRootVersion).Methods("POST")
	router.HandleFunc("/transactions/{id}/root-versions/{versionID}", h.RemoveRootVersion).Methods("DELETE")

	h.logger.Info("Workflow routes registered", map[string]interface{}{
		"routes": []string{
			"PUT /transactions/{id}/name",
			"PUT /transactions/{id}/base-file",
			"PUT /transactions/{id}/preprocessed-file",
			"PUT /transactions/{id}/cutoff-date",
			"POST /transactions/{id}/column-datatypes",
			"POST /transactions/{id}/root-versions",
			"DELETE /transactions/{id}/root-versions/{versionID}",
		},
	})
}
