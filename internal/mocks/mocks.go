// internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/Karan-parmar-007/aurifi-backend/internal/domain/entity"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository mocks the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Insert(ctx context.Context, tx *entity.Transaction) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Transaction, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Apply(ctx context.Context, id string, patch *entity.TransactionPatch) (bool, error) {
	args := m.Called(ctx, id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) SetColumnDatatype(ctx context.Context, id, column, datatype string) (bool, error) {
	args := m.Called(ctx, id, column, datatype)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) AppendRootVersion(ctx context.Context, id, versionID string) (bool, error) {
	args := m.Called(ctx, id, versionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) RemoveRootVersion(ctx context.Context, id, versionID string) (bool, error) {
	args := m.Called(ctx, id, versionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockVersionLookup mocks the VersionLookup interface
type MockVersionLookup struct {
	mock.Mock
}

func (m *MockVersionLookup) FindByID(ctx context.Context, versionID string) (*entity.TransactionVersion, error) {
	args := m.Called(ctx, versionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TransactionVersion), args.Error(1)
}

// MockLogger mocks the logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	args := m.Called(key, value)
	return args.Get(0).(logger.Logger)
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	args := m.Called(fields)
	return args.Get(0).(logger.Logger)
}
