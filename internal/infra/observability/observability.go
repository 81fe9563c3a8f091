// Package observability holds the Prometheus metrics for the goal
// service: document store traffic, list mutations, quote toggles, and
// transfer activity. The /metrics endpoint is gated by config.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Store Metrics ──────────────────────────────────────────────────────────

// StoreReads counts aggregate document reads by outcome.
var StoreReads = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "onegoal",
	Subsystem: "store",
	Name:      "reads_total",
	Help:      "Aggregate document reads by outcome (hit, miss, error).",
}, []string{"outcome"})

// StoreWrites counts store write calls by primitive and outcome.
var StoreWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "onegoal",
	Subsystem: "store",
	Name:      "writes_total",
	Help:      "Store writes by primitive (create, update, array_union, array_remove) and outcome.",
}, []string{"primitive", "outcome"})

// ─── Mutation Metrics ───────────────────────────────────────────────────────

// ListMutations counts successful sub-list mutations by list and op.
var ListMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "onegoal",
	Subsystem: "lists",
	Name:      "mutations_total",
	Help:      "Successful sub-list mutations by list and operation (add, update, delete, reorder).",
}, []string{"list", "op"})

// MutationFailures counts mutations rejected or failed, by list.
var MutationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "onegoal",
	Subsystem: "lists",
	Name:      "mutation_failures_total",
	Help:      "Sub-list mutations that failed, by list.",
}, []string{"list"})

// QuoteToggles counts starred-quote set operations by op.
var QuoteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "onegoal",
	Subsystem: "quotes",
	Name:      "toggles_total",
	Help:      "Starred-quote set operations by op (star, unstar).",
}, []string{"op"})

// ─── Transfer Metrics ───────────────────────────────────────────────────────

// GoalsExported counts goals written to export payloads.
var GoalsExported = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "onegoal",
	Subsystem: "transfer",
	Name:      "goals_exported_total",
	Help:      "Goals serialized into export payloads.",
})

// GoalsImported counts goals persisted from import payloads.
var GoalsImported = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "onegoal",
	Subsystem: "transfer",
	Name:      "goals_imported_total",
	Help:      "Goals deserialized and persisted from import payloads.",
})

// ImportRejections counts import payloads that failed validation.
var ImportRejections = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "onegoal",
	Subsystem: "transfer",
	Name:      "import_rejections_total",
	Help:      "Import payloads rejected by schema validation.",
})
