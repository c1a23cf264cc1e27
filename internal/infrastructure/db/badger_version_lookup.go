// Package db internal/infrastructure/db/badger_version_lookup.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/entity"
	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

const versionKeyPrefix = "transaction_version:"

// BadgerVersionLookup resolves version identifiers against the version
// records the processing pipeline writes into the shared store.
type BadgerVersionLookup struct {
	db  *badger.DB
	now func() time.Time
}

// NewBadgerVersionLookup creates a new BadgerDB version lookup
func NewBadgerVersionLookup(db *badger.DB) *BadgerVersionLookup {
	return &BadgerVersionLookup{
		db:  db,
		now: time.Now,
	}
}

func versionKey(id string) []byte {
	return []byte(versionKeyPrefix + id)
}

// FindByID retrieves a version record by its identifier
func (l *BadgerVersionLookup) FindByID(ctx context.Context, versionID string) (*entity.TransactionVersion, error) {
	var version entity.TransactionVersion

	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(versionKey(versionID))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &version)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve version: %w", err)
	}

	return &version, nil
}

// Store saves a version record and returns its ID. The wider pipeline is
// the usual writer; this seam exists for wiring and tests.
func (l *BadgerVersionLookup) Store(ctx context.Context, version *entity.TransactionVersion) (string, error) {
	if version.ID == "" {
		version.ID = uuid.New().String()
	}
	if version.CreatedAt.IsZero() {
		version.CreatedAt = l.now().UTC()
	}

	data, err := json.Marshal(version)
	if err != nil {
		return "", fmt.Errorf("failed to marshal version: %w", err)
	}

	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(versionKey(version.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store version: %w", err)
	}

	return version.ID, nil
}
