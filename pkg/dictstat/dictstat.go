// Package dictstat instruments the dictionary and quicklist cores with
// Prometheus metrics, following the teacher's habit of instrumenting
// state-changing operations directly at the call site (e.g.
// metricWorkFlushesFailed.Inc() in modules/backendscheduler/cache.go).
package dictstat

import "github.com/prometheus/client_golang/prometheus"

var (
	// RehashSteps counts buckets migrated by dictionary rehash steps.
	RehashSteps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "coredata",
		Subsystem: "dict",
		Name:      "rehash_steps_total",
		Help:      "Number of hash-table buckets migrated by incremental rehashing.",
	})

	// Resizes counts calls that triggered a table expand or shrink.
	Resizes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coredata",
		Subsystem: "dict",
		Name:      "resizes_total",
		Help:      "Number of dictionary resize operations, labeled by direction.",
	}, []string{"direction"})

	// ScanCursors counts completed Scan calls (cursor returned to 0).
	ScanCursors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "coredata",
		Subsystem: "dict",
		Name:      "scans_completed_total",
		Help:      "Number of Scan iterations that ran to cursor 0.",
	})

	// QuicklistCompressAttempts counts LZF compression attempts on
	// quicklist nodes, labeled by outcome.
	QuicklistCompressAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coredata",
		Subsystem: "quicklist",
		Name:      "compress_attempts_total",
		Help:      "Number of node compression attempts, labeled by outcome.",
	}, []string{"outcome"})
)

// MustRegister registers all of this package's collectors against reg.
// Callers embedding coredata into a larger process with its own registry
// should call this once at startup; it is not called automatically so
// importing this package has no side effect on the default registry.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(RehashSteps, Resizes, ScanCursors, QuicklistCompressAttempts)
}
