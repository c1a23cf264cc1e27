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

const transactionKeyPrefix = "transaction:"

// BadgerTransactionRepository implements the transaction repository interface using BadgerDB
type BadgerTransactionRepository struct {
	db  *badger.DB
	now func() time.Time
}

// NewBadgerTransactionRepository creates a new BadgerDB transaction repository
func NewBadgerTransactionRepository(db *badger.DB) *BadgerTransactionRepository {
	return &BadgerTransactionRepository{
		db:  db,
		now: time.Now,
	}
}

func transactionKey(id string) []byte {
	return []byte(transactionKeyPrefix + id)
}

// applyTimestamps stamps created_at and updated_at on create, and
// refreshes only updated_at on subsequent mutations.
func (r *BadgerTransactionRepository) applyTimestamps(tx *entity.Transaction, isUpdate bool) {
	now := r.now().UTC()
	if !isUpdate {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now
}

func getTransaction(txn *badger.Txn, id string) (*entity.Transaction, error) {
	item, err := txn.Get(transactionKey(id))
	if err != nil {
		return nil, err
	}

	var tx entity.Transaction
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &tx)
	})
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

func putTransaction(txn *badger.Txn, tx *entity.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	return txn.Set(transactionKey(tx.ID), data)
}

// Insert stores a new transaction and returns its ID
func (r *BadgerTransactionRepository) Insert(ctx context.Context, tx *entity.Transaction) (string, error) {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.NewColumnDatatypes == nil {
		tx.NewColumnDatatypes = make(map[string]string)
	}
	r.applyTimestamps(tx, false)

	err := r.db.Update(func(txn *badger.Txn) error {
		return putTransaction(txn, tx)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store transaction: %w", err)
	}

	return tx.ID, nil
}

// FindByID retrieves a transaction by its unique identifier
func (r *BadgerTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var tx *entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		tx, err = getTransaction(txn, id)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	return tx, nil
}

// FindByOwner retrieves all transactions belonging to the given owner.
// BadgerDB has no secondary indexes, so this is a prefix scan with an
// owner filter, matching the filtered-scan the store contract asks for.
func (r *BadgerTransactionRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Transaction, error) {
	var txs []*entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(transactionKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var tx entity.Transaction
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tx)
			})
			if err != nil {
				return err
			}

			if tx.OwnerID == ownerID {
				txCopy := tx
				txs = append(txs, &txCopy)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	return txs, nil
}

// mutate runs a read-modify-write cycle on one document inside a single
// badger transaction. It reports false without error when the document
// does not exist, mirroring a zero modified-count.
func (r *BadgerTransactionRepository) mutate(id string, fn func(tx *entity.Transaction)) (bool, error) {
	modified := false

	err := r.db.Update(func(txn *badger.Txn) error {
		tx, err := getTransaction(txn, id)
		if err != nil {
			return err
		}

		fn(tx)
		r.applyTimestamps(tx, true)

		if err := putTransaction(txn, tx); err != nil {
			return err
		}

		modified = true
		return nil
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to update transaction: %w", err)
	}

	return modified, nil
}

// Apply merges a partial update into the stored document
func (r *BadgerTransactionRepository) Apply(ctx context.Context, id string, patch *entity.TransactionPatch) (bool, error) {
	return r.mutate(id, func(tx *entity.Transaction) {
		patch.ApplyTo(tx)
	})
}

// SetColumnDatatype sets one key of the new-column datatype map
func (r *BadgerTransactionRepository) SetColumnDatatype(ctx context.Context, id, column, datatype string) (bool, error) {
	return r.mutate(id, func(tx *entity.Transaction) {
		if tx.NewColumnDatatypes == nil {
			tx.NewColumnDatatypes = make(map[string]string)
		}
		tx.NewColumnDatatypes[column] = datatype
	})
}

// AppendRootVersion appends a version identifier to the rule-application
// root list; duplicates are allowed
func (r *BadgerTransactionRepository) AppendRootVersion(ctx context.Context, id, versionID string) (bool, error) {
	return r.mutate(id, func(tx *entity.Transaction) {
		tx.RuleApplicationRootVersions = append(tx.RuleApplicationRootVersions, versionID)
	})
}

// RemoveRootVersion removes every occurrence of a version identifier
// from the rule-application root list
func (r *BadgerTransactionRepository) RemoveRootVersion(ctx context.Context, id, versionID string) (bool, error) {
	return r.mutate(id, func(tx *entity.Transaction) {
		kept := tx.RuleApplicationRootVersions[:0]
		for _, v := range tx.RuleApplicationRootVersions {
			if v != versionID {
				kept = append(kept, v)
			}
		}
		tx.RuleApplicationRootVersions = kept
	})
}

// Delete removes a transaction, reporting whether a document was removed
func (r *BadgerTransactionRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false

	err := r.db.Update(func(txn *badger.Txn) error {
		// Probe first so a delete of a missing key reports false
		if _, err := txn.Get(transactionKey(id)); err != nil {
			return err
		}

		if err := txn.Delete(transactionKey(id)); err != nil {
			return err
		}

		removed = true
		return nil
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}

	return removed, nil
}
