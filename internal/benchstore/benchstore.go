// Package benchstore persists audited scores so later audits can be ranked
// against a cohort. It sits outside the scoring engine, which only ever sees
// a snapshot of cohort scores.
package benchstore

import (
	"sync"

	"github.com/huangsam/onboard/internal/contract"
)

// BenchmarkStoreManager holds the process-wide BenchmarkStore.
type BenchmarkStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	benchmark    contract.BenchmarkStore
}

var _ contract.StoreManager = &BenchmarkStoreManager{} // Compile-time check

// GetBenchmarkStore returns the benchmark store.
func (mgr *BenchmarkStoreManager) GetBenchmarkStore() contract.BenchmarkStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.benchmark
}
