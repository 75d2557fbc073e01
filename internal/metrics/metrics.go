// Package metrics exposes process-wide prometheus counters for the
// matching and allocation path. Registered once at init; served by the
// /metrics route.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// MatchesCreated counts matches created by the ledger, across both
	// single-entity scans and full sweeps.
	MatchesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exportum_matches_created_total",
		Help: "Number of match records created.",
	})

	// SweepsTotal counts full-sweep runs (scheduled and manual).
	SweepsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exportum_sweeps_total",
		Help: "Number of full matching sweeps executed.",
	})

	// JoinsCommitted counts successful capacity allocations.
	JoinsCommitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exportum_joins_committed_total",
		Help: "Number of batches committed into pools.",
	})

	// JoinsRejected counts rejected join attempts by reason.
	JoinsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exportum_joins_rejected_total",
		Help: "Number of rejected join attempts.",
	}, []string{"reason"})

	// NotifyFailures counts notification deliveries that failed or
	// were dropped.
	NotifyFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exportum_notify_failures_total",
		Help: "Number of failed or dropped notifications.",
	})

	// SnapshotFailures counts durable snapshot writes that failed
	// after retries.
	SnapshotFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "exportum_snapshot_failures_total",
		Help: "Number of snapshot writes that failed after retries.",
	})
)

func init() {
	prometheus.MustRegister(
		MatchesCreated,
		SweepsTotal,
		JoinsCommitted,
		JoinsRejected,
		NotifyFailures,
		SnapshotFailures,
	)
}
