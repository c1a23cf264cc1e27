package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/entity"
	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB opens a throwaway BadgerDB in a temp directory
func setupTestDB(t *testing.T) *badger.DB {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "badger-test")
	require.NoError(t, err)

	badgerOpts := badger.DefaultOptions(tempDir)
	badgerOpts.Logger = nil
	badgerOpts.SyncWrites = false

	badgerDB, err := badger.Open(badgerOpts)
	require.NoError(t, err)

	t.Cleanup(func() {
		badgerDB.Close()
		os.RemoveAll(tempDir)
	})

	return badgerDB
}

func newTestTransaction(owner string) *entity.Transaction {
	return entity.NewTransaction(owner, "Q3 loans", "/uploads/q3.csv", nil, nil)
}

func TestInsertAndFindByID(t *testing.T) {
	repo := NewBadgerTransactionRepository(setupTestDB(t))
	ctx := context.Background()

	id, err := repo.Insert(ctx, newTestTransaction("owner-1"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "owner-1", got.OwnerID)
	assert.Equal(t, "Q3 loans", got.Name)
	assert.Equal(t, "/uploads/q3.csv", got.BaseFilePath)
	assert.Equal(t, 0, got.VersionNumber)
	assert.False(t, got.AreAllStepsComplete)
	assert.NotNil(t, got.NewColumnDatatypes)
	assert.Empty(t, got.NewColumnDatatypes)
	assert.Nil(t, got.BaseFile)
	assert.Nil(t, got.PreprocessedFile)
	assert.Nil(t, got.CutoffDate)
	assert.Empty(t, got.RuleApplicationRootVersions)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestFindByIDMissing(t *testing.T) {
	repo := NewBadgerTransactionRepository(setupTestDB(t))

	got, err := repo.FindByID(context.Background(), "no-such-id")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApply(t *testing.T) {
	repo := NewBadgerTransactionRepository(setupTestDB(t))
	ctx := context.Background()

	// Stepped clock so the updated-at refresh is observable
	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	step := 0
	repo.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	id, err := repo.Insert(ctx, newTestTransaction("owner-1"))
	require.NoError(t, err)

	newName := "renamed"
	complete := true
	modified, err := repo.Apply(ctx, id, &entity.TransactionPatch{
		Name:                &newName,
		AreAllStepsComplete: &complete,
	})
	require.NoError(t, err)
	assert.True(t, modified)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.True(t, got.AreAllStepsComplete)
	assert.Equal(t, "owner-1", got.OwnerID)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt), "updated_at must be refreshed")
}

func TestApplyMissing(t *testing.T) {
	repo := NewBadgerTransactionRepository(setupTestDB(t))

	newName := "renamed"
	modified, err := repo.Apply(context.Background(), "no-such-id", &entity.TransactionPatch{Name: &newName})

	assert.NoError(t, err)
	assert.False(t, modified)
}

func TestSetColumnDatatype(t *testing.T) {
	repo := NewBadgerTransactionRepository(setupTestDB(t))
	ctx := context.Background()

	id, err := repo.Insert(ctx, newTestTransaction("owner-1"))
	require.NoError(t, err)

	modified, err := repo.SetColumnDatatype(ctx, id, "rating", "string")
	require.NoError(t, err)
	assert.True(t, modified)

	// Setting the same key again overwrites rather than duplicating
	modified, err = repo.SetColumnDatatype(ctx, id, "rating", "int")
	require.NoError(t, err)
	assert.True(t, modified)

	modified, err = repo.SetColumnDatatype(ctx, id, "balance", "float")
	require.NoError(t, err)
	assert.True(t, modified)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"rating": "int", "balance": "float"}, got.NewColumnDatatypes)
}

func TestRootVersionListOperations(t *testing.T) {
	repo := NewBadgerTransactionRepository(setupTestDB(t))
	ctx := context.Background()

	id, err := repo.Insert(ctx, newTestTransaction("owner-1"))
	require.NoError(t, err)

	for _, v := range []string{"v1", "v2", "v1"} {
		modified, err := repo.AppendRootVersion(ctx, id, v)
		require.NoError(t, err)
		assert.True(t, modified)
	}

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2", "v1"}, got.RuleApplicationRootVersions,
		"append preserves order and permits duplicates")

	modified, err := repo.RemoveRootVersion(ctx, id, "v1")
	require.NoError(t, err)
	assert.True(t, modified)

	got, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, got.RuleApplicationRootVersions,
		"remove drops every occurrence, leaving others untouched")

	// Removing an absent value still counts as a write to the document
	modified, err = repo.RemoveRootVersion(ctx, id, "v9")
	require.NoError(t, err)
	assert.True(t, modified)

	modified, err = repo.AppendRootVersion(ctx, "no-such-id", "v1")
	require.NoError(t, err)
	assert.False(t, modified)
}

func TestDelete(t *testing.T) {
	repo := NewBadgerTransactionRepository(setupTestDB(t))
	ctx := context.Background()

	id, err := repo.Insert(ctx, newTestTransaction("owner-1"))
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	removed, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, removed, "second delete removes nothing")
}

func TestFindByOwner(t *testing.T) {
	repo := NewBadgerTransactionRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Insert(ctx, newTestTransaction("owner-a"))
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, newTestTransaction("owner-b"))
	require.NoError(t, err)

	txs, err := repo.FindByOwner(ctx, "owner-a")
	require.NoError(t, err)
	assert.Len(t, txs, 3)
	for _, tx := range txs {
		assert.Equal(t, "owner-a", tx.OwnerID)
	}

	txs, err = repo.FindByOwner(ctx, "owner-c")
	require.NoError(t, err)
	assert.Empty(t, txs)
}
