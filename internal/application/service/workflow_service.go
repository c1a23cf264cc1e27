// Package service internal/application/service/workflow_service.go
package service

import (
	"context"

	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/entity"
	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/repository"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/logger"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/middleware"
	"github.com/google/uuid"
)

// WorkflowService handles the dedicated single-field mutations the
// processing pipeline drives: file references, renames, cutoff dates,
// column datatypes, and the rule-application root list. Same error
// policy as TransactionService: catch, log, return false.
type WorkflowService struct {
	repo   repository.TransactionRepository
	logger logger.Logger
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(repo repository.TransactionRepository, log logger.Logger) *WorkflowService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &WorkflowService{
		repo:   repo,
		logger: log,
	}
}

// parseID validates the transaction identifier, logging on failure.
func (s *WorkflowService) parseID(ctx context.Context, op, id string) bool {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Error("Invalid transaction id", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"operation":  op,
			"id":         id,
			"error":      err.Error(),
		})
		return false
	}
	return true
}

// apply runs a patch against one transaction with the uniform error policy.
func (s *WorkflowService) apply(ctx context.Context, op, id string, patch *entity.TransactionPatch) bool {
	if !s.parseID(ctx, op, id) {
		return false
	}

	modified, err := s.repo.Apply(ctx, id, patch)
	if err != nil {
		s.logger.Error("Error updating transaction", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"operation":  op,
			"id":         id,
			"error":      err.Error(),
		})
		return false
	}

	return modified
}

// SetBaseFile records the version holding the transaction's base file.
func (s *WorkflowService) SetBaseFile(ctx context.Context, id, versionID string) bool {
	return s.apply(ctx, "set_base_file", id, &entity.TransactionPatch{BaseFile: &versionID})
}

// SetPreprocessedFile records the version holding the preprocessed file.
func (s *WorkflowService) SetPreprocessedFile(ctx context.Context, id, versionID string) bool {
	return s.apply(ctx, "set_preprocessed_file", id, &entity.TransactionPatch{PreprocessedFile: &versionID})
}

// Rename changes the transaction's display name.
func (s *WorkflowService) Rename(ctx context.Context, id, newName string) bool {
	return s.apply(ctx, "rename", id, &entity.TransactionPatch{Name: &newName})
}

// UpdateCutoffDate stores the cutoff date verbatim. Callers are expected
// to send dd/mm/yyyy but the value is not validated here.
func (s *WorkflowService) UpdateCutoffDate(ctx context.Context, id, cutoffDate string) bool {
	return s.apply(ctx, "update_cutoff_date", id, &entity.TransactionPatch{CutoffDate: &cutoffDate})
}

// AddColumnDatatype records the declared datatype for a newly added column.
func (s *WorkflowService) AddColumnDatatype(ctx context.Context, id, column, datatype string) bool {
	if !s.parseID(ctx, "add_column_datatype", id) {
		return false
	}

	modified, err := s.repo.SetColumnDatatype(ctx, id, column, datatype)
	if err != nil {
		s.logger.Error("Error setting column datatype", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"id":         id,
			"column":     column,
			"error":      err.Error(),
		})
		return false
	}

	return modified
}

// AddRuleApplicationRootVersion appends a root version identifier to the
// transaction's rule-application list. Duplicates are permitted.
func (s *WorkflowService) AddRuleApplicationRootVersion(ctx context.Context, id, versionID string) bool {
	if !s.parseID(ctx, "add_rule_application_root_version", id) {
		return false
	}

	modified, err := s.repo.AppendRootVersion(ctx, id, versionID)
	if err != nil {
		s.logger.Error("Error appending root version", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"id":         id,
			"version_id": versionID,
			"error":      err.Error(),
		})
		return false
	}

	return modified
}

// RemoveRuleApplicationRootVersion removes every occurrence of a root
// version identifier from the transaction's rule-application list.
//
// TODO: sub-versions descended from the removed root are left orphaned;
// removing them needs the version tree walk owned by the pipeline layer.
func (s *WorkflowService) RemoveRuleApplicationRootVersion(ctx context.Context, id, versionID string) bool {
	if !s.parseID(ctx, "remove_rule_application_root_version", id) {
		return false
	}

	modified, err := s.repo.RemoveRootVersion(ctx, id, versionID)
	if err != nil {
		s.logger.Error("Error removing root version", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"id":         id,
			"version_id": versionID,
			"error":      err.Error(),
		})
		return false
	}

	return modified
}
