package service

import (
	"context"

	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/entity"
)

// VersionLookup resolves a version identifier to its stored file-version
// record. The records themselves are written by the processing pipeline;
// this layer only reads them to derive file locations.
type VersionLookup interface {
	// FindByID retrieves a version record by its identifier.
	// Returns repository.ErrNotFound when no record exists.
	FindByID(ctx context.Context, versionID string) (*entity.TransactionVersion, error)
}
