package handler

import (
	"time"

	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for creating a transaction
type CreateTransactionRequest struct {
	OwnerID             string  `json:"owner_id" validate:"required"`
	Name                string  `json:"name" validate:"required"`
	BaseFilePath        string  `json:"base_file_path" validate:"required"`
	PrimaryAssetClass   *string `json:"primary_asset_class,omitempty"`
	SecondaryAssetClass *string `json:"secondary_asset_class,omitempty"`
}

// CreateTransactionResponse represents the response for the create transaction endpoint
type CreateTransactionResponse struct {
	ID string `json:"id"`
}

// RenameTransactionRequest represents the request body for renaming a transaction
type RenameTransactionRequest struct {
	Name string `json:"name" validate:"required"`
}

// SetFileVersionRequest carries the version identifier for the file-reference endpoints
type SetFileVersionRequest struct {
	VersionID string `json:"version_id" validate:"required"`
}

// CutoffDateRequest carries the cutoff date. Callers send dd/mm/yyyy by
// convention; the value is stored verbatim without format validation.
type CutoffDateRequest struct {
	CutoffDate string `json:"cutoff_date" validate:"required"`
}

// ColumnDatatypeRequest declares the datatype of a newly added column
type ColumnDatatypeRequest struct {
	Column   string `json:"column" validate:"required"`
	Datatype string `json:"datatype" validate:"required"`
}

// RootVersionRequest carries a rule-application root version identifier
type RootVersionRequest struct {
	VersionID string `json:"version_id" validate:"required"`
}

// StatusResponse represents the response for the single-field mutation endpoints
type StatusResponse struct {
	Status string `json:"status"`
}

// TransactionResponse represents the response for transaction endpoints
type TransactionResponse struct {
	ID                          string            `json:"id"`
	OwnerID                     string            `json:"owner_id"`
	Name                        string            `json:"name"`
	BaseFilePath                string            `json:"base_file_path"`
	VersionNumber               int               `json:"version_number"`
	BaseFile                    *string           `json:"base_file"`
	PreprocessedFile            *string           `json:"preprocessed_file"`
	ColumnRenameFile            *string           `json:"column_rename_file"`
	TempDatatypeChangeFile      *string           `json:"temp_datatype_change_file"`
	DatatypeChangeFile          *string           `json:"datatype_change_file"`
	TempRulesApplied            *string           `json:"temp_rules_applied"`
	FinalRulesApplied           *string           `json:"final_rules_applied"`
	AreAllStepsComplete         bool              `json:"are_all_steps_complete"`
	NewColumnDatatypes          map[string]string `json:"new_column_datatypes"`
	CutoffDate                  *string           `json:"cutoff_date"`
	RuleApplicationRootVersions []string          `json:"rule_application_root_versions"`
	PrimaryAssetClass           *string           `json:"primary_asset_class,omitempty"`
	SecondaryAssetClass         *string           `json:"secondary_asset_class,omitempty"`
	BaseFileLocation            string            `json:"base_file_location,omitempty"`
	CreatedAt                   string            `json:"created_at"`
	UpdatedAt                   string            `json:"updated_at"`
}

// toTransactionResponse maps a transaction entity to its response form
func toTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                          tx.ID,
		OwnerID:                     tx.OwnerID,
		Name:                        tx.Name,
		BaseFilePath:                tx.BaseFilePath,
		VersionNumber:               tx.VersionNumber,
		BaseFile:                    tx.BaseFile,
		PreprocessedFile:            tx.PreprocessedFile,
		ColumnRenameFile:            tx.ColumnRenameFile,
		TempDatatypeChangeFile:      tx.TempDatatypeChangeFile,
		DatatypeChangeFile:          tx.DatatypeChangeFile,
		TempRulesApplied:            tx.TempRulesApplied,
		FinalRulesApplied:           tx.FinalRulesApplied,
		AreAllStepsComplete:         tx.AreAllStepsComplete,
		NewColumnDatatypes:          tx.NewColumnDatatypes,
		CutoffDate:                  tx.CutoffDate,
		RuleApplicationRootVersions: tx.RuleApplicationRootVersions,
		PrimaryAssetClass:           tx.PrimaryAssetClass,
		SecondaryAssetClass:         tx.SecondaryAssetClass,
		BaseFileLocation:            tx.BaseFileLocation,
		CreatedAt:                   tx.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:                   tx.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description"`
	RequestID   string `json:"request_id"`
}
