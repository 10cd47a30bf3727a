package contract

import (
	"time"

	"github.com/huangsam/onboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ StoreManager = &MockStoreManager{} // Compile-time check

// GetBenchmarkStore implements the StoreManager interface.
func (m *MockStoreManager) GetBenchmarkStore() BenchmarkStore {
	ret := m.Called()
	store, _ := ret.Get(0).(BenchmarkStore)
	return store
}

// MockBenchmarkStore is a mock implementation of BenchmarkStore for testing.
type MockBenchmarkStore struct {
	mock.Mock
}

var _ BenchmarkStore = &MockBenchmarkStore{} // Compile-time check

// Submit implements the BenchmarkStore interface.
func (m *MockBenchmarkStore) Submit(sub schema.BenchmarkSubmission) (int64, error) {
	args := m.Called(sub)
	return args.Get(0).(int64), args.Error(1)
}

// CohortScores implements the BenchmarkStore interface.
func (m *MockBenchmarkStore) CohortScores(cohort, manifestHash, calibrationVersion string) ([]float64, error) {
	args := m.Called(cohort, manifestHash, calibrationVersion)
	scores, _ := args.Get(0).([]float64)
	return scores, args.Error(1)
}

// GetAllSubmissions implements the BenchmarkStore interface.
func (m *MockBenchmarkStore) GetAllSubmissions() ([]schema.BenchmarkSubmission, error) {
	args := m.Called()
	subs, _ := args.Get(0).([]schema.BenchmarkSubmission)
	return subs, args.Error(1)
}

// GetStatus implements the BenchmarkStore interface.
func (m *MockBenchmarkStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the BenchmarkStore interface.
func (m *MockBenchmarkStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockOutputWriter is a mock implementation of OutputWriter for testing.
type MockOutputWriter struct {
	mock.Mock
}

var _ OutputWriter = &MockOutputWriter{} // Compile-time check

// WriteAudit implements the OutputWriter interface.
func (m *MockOutputWriter) WriteAudit(result schema.AuditResult, cfg *Config, duration time.Duration) error {
	return m.Called(result, cfg, duration).Error(0)
}

// WriteValidation implements the OutputWriter interface.
func (m *MockOutputWriter) WriteValidation(report schema.ValidationReport, cfg *Config) error {
	return m.Called(report, cfg).Error(0)
}

// WriteCalibration implements the OutputWriter interface.
func (m *MockOutputWriter) WriteCalibration(result schema.CalibrationResult, cfg *Config, duration time.Duration) error {
	return m.Called(result, cfg, duration).Error(0)
}

// WriteRanking implements the OutputWriter interface.
func (m *MockOutputWriter) WriteRanking(ranking schema.BenchmarkRanking, cfg *Config) error {
	return m.Called(ranking, cfg).Error(0)
}

// WriteRules implements the OutputWriter interface.
func (m *MockOutputWriter) WriteRules(listing schema.RulesListing, cfg *Config) error {
	return m.Called(listing, cfg).Error(0)
}

// WriteStatus implements the OutputWriter interface.
func (m *MockOutputWriter) WriteStatus(status schema.StoreStatus, cfg *Config) error {
	return m.Called(status, cfg).Error(0)
}
