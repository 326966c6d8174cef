// Package observability exposes import counters over Prometheus.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ImportRunsTotal counts completed import runs by outcome.
	ImportRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hargapangan_import_runs_total",
			Help: "Import runs by outcome (ok/error/blocked).",
		},
		[]string{"outcome"},
	)

	// RowsImportedTotal counts upserted price observations.
	RowsImportedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hargapangan_rows_imported_total",
			Help: "Price observations upserted into the ledger.",
		},
	)

	// RowsSkippedTotal counts observations skipped during import.
	RowsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hargapangan_rows_skipped_total",
			Help: "Price observations skipped during import.",
		},
	)
)

var registerOnce sync.Once

// Register installs the collectors in the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ImportRunsTotal, RowsImportedTotal, RowsSkippedTotal)
	})
}
