package internal

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Karan-parmar-007/aurifi-backend/internal/application/service"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/db"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/logger"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

func TestPerformance(t *testing.T) {
	// Skip in short mode or CI
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	// Setup test database
	dbPath, err := os.MkdirTemp("", "badger-perf-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(dbPath)

	badgerOpts := badger.DefaultOptions(dbPath).WithLogger(nil)
	badgerOpts.SyncWrites = false
	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer badgerDB.Close()

	// Initialize repositories and services
	txRepo := db.NewBadgerTransactionRepository(badgerDB)
	versionLookup := db.NewBadgerVersionLookup(badgerDB)
	txService := service.NewTransactionService(txRepo, versionLookup, logger.NewNop())
	workflowService := service.NewWorkflowService(txRepo, logger.NewNop())

	// Performance test configuration
	numTransactions := 100
	concurrency := 10
	owners := make([]string, concurrency)
	for i := range owners {
		owners[i] = uuid.New().String()
	}

	var mu sync.Mutex
	var txIDs []string

	// Test transaction creation throughput
	t.Run("Transaction Creation", func(t *testing.T) {
		startTime := time.Now()

		wg := sync.WaitGroup{}
		wg.Add(concurrency)

		txPerWorker := numTransactions / concurrency

		for i := 0; i < concurrency; i++ {
			go func(workerID int) {
				defer wg.Done()

				ctx := context.Background()
				for j := 0; j < txPerWorker; j++ {
					name := fmt.Sprintf("Perf transaction %d-%d", workerID, j)
					path := fmt.Sprintf("/uploads/perf-%d-%d.csv", workerID, j)

					id := txService.Create(ctx, owners[workerID], name, path, nil, nil)
					if id == "" {
						t.Errorf("Failed to create transaction %d-%d", workerID, j)
						continue
					}

					mu.Lock()
					txIDs = append(txIDs, id)
					mu.Unlock()
				}
			}(i)
		}

		wg.Wait()
		duration := time.Since(startTime)

		throughput := float64(numTransactions) / duration.Seconds()
		t.Logf("Transaction creation: %d transactions in %v (%.2f tx/sec)",
			numTransactions, duration, throughput)
	})

	// Test transaction retrieval throughput
	t.Run("Transaction Retrieval", func(t *testing.T) {
		startTime := time.Now()

		wg := sync.WaitGroup{}
		wg.Add(concurrency)

		idsPerWorker := len(txIDs) / concurrency

		for i := 0; i < concurrency; i++ {
			go func(workerID int) {
				defer wg.Done()

				ctx := context.Background()
				for j := 0; j < idsPerWorker; j++ {
					id := txIDs[workerID*idsPerWorker+j]
					if tx := txService.Get(ctx, id); tx == nil {
						t.Errorf("Failed to retrieve transaction %s", id)
					}
				}
			}(i)
		}

		wg.Wait()
		duration := time.Since(startTime)

		throughput := float64(len(txIDs)) / duration.Seconds()
		t.Logf("Transaction retrieval: %d lookups in %v (%.2f tx/sec)",
			len(txIDs), duration, throughput)
	})

	// Test concurrent single-field mutations on the same document
	t.Run("Concurrent Mutations", func(t *testing.T) {
		id := txIDs[0]
		startTime := time.Now()

		wg := sync.WaitGroup{}
		wg.Add(concurrency)

		mutationsPerWorker := 10

		for i := 0; i < concurrency; i++ {
			go func(workerID int) {
				defer wg.Done()

				ctx := context.Background()
				for j := 0; j < mutationsPerWorker; j++ {
					versionID := fmt.Sprintf("v-%d-%d", workerID, j)
					workflowService.AddRuleApplicationRootVersion(ctx, id, versionID)
				}
			}(i)
		}

		wg.Wait()
		duration := time.Since(startTime)

		total := concurrency * mutationsPerWorker
		throughput := float64(total) / duration.Seconds()
		t.Logf("Concurrent mutations: %d appends in %v (%.2f ops/sec)",
			total, duration, throughput)
	})

	// Test owner scan throughput
	t.Run("List By Owner", func(t *testing.T) {
		startTime := time.Now()

		ctx := context.Background()
		scans := 0
		for _, owner := range owners {
			txs := txService.ListByOwner(ctx, owner)
			if len(txs) == 0 {
				t.Errorf("Expected transactions for owner %s", owner)
			}
			scans++
		}

		duration := time.Since(startTime)
		throughput := float64(scans) / duration.Seconds()
		t.Logf("Owner scans: %d scans in %v (%.2f scans/sec)", scans, duration, throughput)
	})
}
