package resultstore

import (
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
	"github.com/stretchr/testify/mock"
)

// MockReportStore is a mock implementation of ReportStore for testing.
type MockReportStore struct {
	mock.Mock
}

var _ contract.ReportStore = &MockReportStore{} // Compile-time check

// SaveReport implements the ReportStore interface.
func (m *MockReportStore) SaveReport(record schema.ReportRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// ListReports implements the ReportStore interface.
func (m *MockReportStore) ListReports(benchmark string, limit int) ([]schema.ReportRecord, error) {
	args := m.Called(benchmark, limit)
	records, _ := args.Get(0).([]schema.ReportRecord)
	return records, args.Error(1)
}

// GetAllReports implements the ReportStore interface.
func (m *MockReportStore) GetAllReports() ([]schema.ReportRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ReportRecord)
	return records, args.Error(1)
}

// GetStatus implements the ReportStore interface.
func (m *MockReportStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.StoreStatus)
	return status, args.Error(1)
}

// Close implements the ReportStore interface.
func (m *MockReportStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetReportStore implements the StoreManager interface.
func (m *MockStoreManager) GetReportStore() contract.ReportStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ReportStore)
	return store
}
