// Package resultstore persists score reports across runs.
package resultstore

import (
	"sync"

	"github.com/scorebench/scorebench/internal/contract"
)

// ReportStoreManager manages the report store handle.
type ReportStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	reports      contract.ReportStore
}

var _ contract.StoreManager = &ReportStoreManager{} // Compile-time check

// GetReportStore returns the report store.
func (mgr *ReportStoreManager) GetReportStore() contract.ReportStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.reports
}
