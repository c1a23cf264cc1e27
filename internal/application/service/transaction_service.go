// Package service internal/application/service/transaction_service.go
package service

import (
	"context"

	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/entity"
	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/repository"
	domainservice "github.com/Karan-parmar-007/aurifi-backend/internal/domain/service"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/logger"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/middleware"
	"github.com/google/uuid"
)

// TransactionService handles create/read/update/delete operations on
// transactions. Every failure is caught here, logged with context, and
// collapsed into a uniform negative result; callers never see the
// underlying error and cannot distinguish "not found" from a store
// outage. That opacity is part of the contract.
type TransactionService struct {
	repo   repository.TransactionRepository
	lookup domainservice.VersionLookup
	logger logger.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository, lookup domainservice.VersionLookup, log logger.Logger) *TransactionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionService{
		repo:   repo,
		lookup: lookup,
		logger: log,
	}
}

// Get retrieves a transaction by ID, or nil when the identifier is
// invalid, the document is missing, or the store fails.
func (s *TransactionService) Get(ctx context.Context, id string) *entity.Transaction {
	requestID := middleware.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		s.logger.Error("Invalid transaction id", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return nil
	}

	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Error fetching transaction", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return nil
	}

	return tx
}

// Create stores a new transaction with the full default field set and
// returns its identifier, or "" on any failure.
func (s *TransactionService) Create(ctx context.Context, ownerID, name, baseFilePath string, primaryAssetClass, secondaryAssetClass *string) string {
	requestID := middleware.GetRequestID(ctx)

	if _, err := uuid.Parse(ownerID); err != nil {
		s.logger.Error("Invalid owner id", map[string]interface{}{
			"request_id": requestID,
			"owner_id":   ownerID,
			"error":      err.Error(),
		})
		return ""
	}

	tx := entity.NewTransaction(ownerID, name, baseFilePath, primaryAssetClass, secondaryAssetClass)
	if err := tx.Validate(); err != nil {
		s.logger.Error("Invalid transaction", map[string]interface{}{
			"request_id": requestID,
			"owner_id":   ownerID,
			"error":      err.Error(),
		})
		return ""
	}

	id, err := s.repo.Insert(ctx, tx)
	if err != nil {
		s.logger.Error("Error creating transaction", map[string]interface{}{
			"request_id": requestID,
			"owner_id":   ownerID,
			"name":       name,
			"error":      err.Error(),
		})
		return ""
	}

	s.logger.Info("Transaction created", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
		"owner_id":   ownerID,
	})

	return id
}

// Update applies a partial update. The patch type has no identifier or
// owner fields, so those can never be modified through this path.
// Returns true only when a document was actually modified.
func (s *TransactionService) Update(ctx context.Context, id string, patch *entity.TransactionPatch) bool {
	requestID := middleware.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		s.logger.Error("Invalid transaction id", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return false
	}

	modified, err := s.repo.Apply(ctx, id, patch)
	if err != nil {
		s.logger.Error("Error updating transaction", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return false
	}

	return modified
}

// Delete removes a transaction. No cascade: version records referencing
// the transaction are left in place for the pipeline layer to reclaim.
// Returns true only when a document was actually removed.
func (s *TransactionService) Delete(ctx context.Context, id string) bool {
	requestID := middleware.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		s.logger.Error("Invalid transaction id", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return false
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Error deleting transaction", map[string]interface{}{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		})
		return false
	}

	return removed
}

// ListByOwner retrieves every transaction owned by the given user, each
// enriched with the base file's storage location resolved through the
// version lookup. Returns an empty slice on any failure.
func (s *TransactionService) ListByOwner(ctx context.Context, ownerID string) []*entity.Transaction {
	requestID := middleware.GetRequestID(ctx)

	if _, err := uuid.Parse(ownerID); err != nil {
		s.logger.Error("Invalid owner id", map[string]interface{}{
			"request_id": requestID,
			"owner_id":   ownerID,
			"error":      err.Error(),
		})
		return []*entity.Transaction{}
	}

	txs, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Error fetching transactions for user", map[string]interface{}{
			"request_id": requestID,
			"owner_id":   ownerID,
			"error":      err.Error(),
		})
		return []*entity.Transaction{}
	}

	for _, tx := range txs {
		tx.BaseFileLocation = s.resolveBaseFileLocation(ctx, requestID, tx)
	}

	if txs == nil {
		txs = []*entity.Transaction{}
	}

	return txs
}

// resolveBaseFileLocation maps a transaction's base file reference to the
// version record's files_path, or "" when the reference is unset or the
// lookup misses.
func (s *TransactionService) resolveBaseFileLocation(ctx context.Context, requestID string, tx *entity.Transaction) string {
	if tx.BaseFile == nil || *tx.BaseFile == "" {
		return ""
	}

	version, err := s.lookup.FindByID(ctx, *tx.BaseFile)
	if err != nil {
		s.logger.Warn("Base file version lookup missed", map[string]interface{}{
			"request_id": requestID,
			"id":         tx.ID,
			"base_file":  *tx.BaseFile,
			"error":      err.Error(),
		})
		return ""
	}

	return version.FilesPath
}
