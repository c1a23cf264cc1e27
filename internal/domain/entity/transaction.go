package entity

import (
	"errors"
	"time"
)

// Transaction represents one unit of file-processing work: the uploaded
// base file, the intermediate files produced by each pipeline step, and
// the rule-application state, all referenced by version identifiers.
type Transaction struct {
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
	CreatedAt                   time.Time         `json:"created_at"`
	UpdatedAt                   time.Time         `json:"updated_at"`

	// BaseFileLocation is derived from the base file's version record
	// when listing transactions; it is never written to the store.
	BaseFileLocation string `json:"base_file_location,omitempty"`
}

// NewTransaction creates a transaction with the initial field set for a
// freshly registered upload. The ID is left empty for the store to assign.
func NewTransaction(ownerID, name, baseFilePath string, primaryAssetClass, secondaryAssetClass *string) *Transaction {
	return &Transaction{
		OwnerID:             ownerID,
		Name:                name,
		BaseFilePath:        baseFilePath,
		VersionNumber:       0,
		AreAllStepsComplete: false,
		NewColumnDatatypes:  make(map[string]string),
		PrimaryAssetClass:   primaryAssetClass,
		SecondaryAssetClass: secondaryAssetClass,
	}
}

// Validate ensures the transaction meets all requirements
func (t *Transaction) Validate() error {
	if t.OwnerID == "" {
		return errors.New("owner id must not be empty")
	}

	if t.Name == "" {
		return errors.New("name must not be empty")
	}

	if t.BaseFilePath == "" {
		return errors.New("base file path must not be empty")
	}

	return nil
}

// TransactionPatch is a partial update to a transaction. A nil field is
// left unchanged; non-nil map and slice fields replace the stored value
// wholesale. The identifier, owner identifier and base file path are
// deliberately absent: they cannot be modified through the update path.
type TransactionPatch struct {
	Name                        *string           `json:"name,omitempty"`
	VersionNumber               *int              `json:"version_number,omitempty"`
	BaseFile                    *string           `json:"base_file,omitempty"`
	PreprocessedFile            *string           `json:"preprocessed_file,omitempty"`
	ColumnRenameFile            *string           `json:"column_rename_file,omitempty"`
	TempDatatypeChangeFile      *string           `json:"temp_datatype_change_file,omitempty"`
	DatatypeChangeFile          *string           `json:"datatype_change_file,omitempty"`
	TempRulesApplied            *string           `json:"temp_rules_applied,omitempty"`
	FinalRulesApplied           *string           `json:"final_rules_applied,omitempty"`
	AreAllStepsComplete         *bool             `json:"are_all_steps_complete,omitempty"`
	NewColumnDatatypes          map[string]string `json:"new_column_datatypes,omitempty"`
	CutoffDate                  *string           `json:"cutoff_date,omitempty"`
	RuleApplicationRootVersions []string          `json:"rule_application_root_versions,omitempty"`
	PrimaryAssetClass           *string           `json:"primary_asset_class,omitempty"`
	SecondaryAssetClass         *string           `json:"secondary_asset_class,omitempty"`
}

// ApplyTo merges the patch into the given transaction.
func (p *TransactionPatch) ApplyTo(t *Transaction) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.VersionNumber != nil {
		t.VersionNumber = *p.VersionNumber
	}
	if p.BaseFile != nil {
		t.BaseFile = p.BaseFile
	}
	if p.PreprocessedFile != nil {
		t.PreprocessedFile = p.PreprocessedFile
	}
	if p.ColumnRenameFile != nil {
		t.ColumnRenameFile = p.ColumnRenameFile
	}
	if p.TempDatatypeChangeFile != nil {
		t.TempDatatypeChangeFile = p.TempDatatypeChangeFile
	}
	if p.DatatypeChangeFile != nil {
		t.DatatypeChangeFile = p.DatatypeChangeFile
	}
	if p.TempRulesApplied != nil {
		t.TempRulesApplied = p.TempRulesApplied
	}
	if p.FinalRulesApplied != nil {
		t.FinalRulesApplied = p.FinalRulesApplied
	}
	if p.AreAllStepsComplete != nil {
		t.AreAllStepsComplete = *p.AreAllStepsComplete
	}
	if p.NewColumnDatatypes != nil {
		t.NewColumnDatatypes = p.NewColumnDatatypes
	}
	if p.CutoffDate != nil {
		t.CutoffDate = p.CutoffDate
	}
	if p.RuleApplicationRootVersions != nil {
		t.RuleApplicationRootVersions = p.RuleApplicationRootVersions
	}
	if p.PrimaryAssetClass != nil {
		t.PrimaryAssetClass = p.PrimaryAssetClass
	}
	if p.SecondaryAssetClass != nil {
		t.SecondaryAssetClass = p.SecondaryAssetClass
	}
}

// IsEmpty reports whether the patch carries no field changes.
func (p *TransactionPatch) IsEmpty() bool {
	return p.Name == nil &&
		p.VersionNumber == nil &&
		p.BaseFile == nil &&
		p.PreprocessedFile == nil &&
		p.ColumnRenameFile == nil &&
		p.TempDatatypeChangeFile == nil &&
		p.DatatypeChangeFile == nil &&
		p.TempRulesApplied == nil &&
		p.FinalRulesApplied == nil &&
		p.AreAllStepsComplete == nil &&
		p.NewColumnDatatypes == nil &&
		p.CutoffDate == nil &&
		p.RuleApplicationRootVersions == nil &&
		p.PrimaryAssetClass == nil &&
		p.SecondaryAssetClass == nil
}
