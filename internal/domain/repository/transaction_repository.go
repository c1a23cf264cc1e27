package repository

import (
	"context"
	"errors"

	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/entity"
)

// ErrNotFound is returned when no document exists for the given identifier.
var ErrNotFound = errors.New("not found")

// TransactionRepository defines the document-store contract for transactions.
// Every operation is one atomic store call; mutating operations report
// whether a document was actually modified so callers can distinguish a
// missing document from a successful write.
type TransactionRepository interface {
	// Insert stores a new transaction, assigns its identifier when empty,
	// stamps both timestamps, and returns the identifier.
	Insert(ctx context.Context, tx *entity.Transaction) (string, error)

	// FindByID retrieves a transaction by its unique identifier.
	// Returns ErrNotFound when no document exists.
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)

	// FindByOwner retrieves every transaction belonging to the given owner.
	FindByOwner(ctx context.Context, ownerID string) ([]*entity.Transaction, error)

	// Apply merges a partial update into the stored document and refreshes
	// its updated-at timestamp. Returns false when the document is missing.
	Apply(ctx context.Context, id string, patch *entity.TransactionPatch) (bool, error)

	// SetColumnDatatype sets one key of the new-column datatype map.
	SetColumnDatatype(ctx context.Context, id, column, datatype string) (bool, error)

	// AppendRootVersion appends a version identifier to the ordered
	// rule-application root list. Duplicates are allowed.
	AppendRootVersion(ctx context.Context, id, versionID string) (bool, error)

	// RemoveRootVersion removes every occurrence of a version identifier
	// from the rule-application root list.
	RemoveRootVersion(ctx context.Context, id, versionID string) (bool, error)

	// Delete removes a transaction. Returns false when nothing was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
