// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger event kinds.
const (
	EventBuyIn        = "buy_in"
	EventCashOut      = "cash_out"
	EventReactivate   = "reactivate"
	EventDeleteBuyIn  = "delete_buy_in"
	EventTableClosed  = "table_closed"
	EventTableReopen  = "table_reopened"
	EventPlayerSeated = "player_seated"
)

var (
	// LedgerEvents counts committed ledger mutations by kind.
	LedgerEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokerledger",
		Name:      "ledger_events_total",
		Help:      "Committed ledger mutations by kind.",
	}, []string{"kind"})

	// CloseRejections counts close attempts refused because the table was unbalanced.
	CloseRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pokerledger",
		Name:      "table_close_rejections_total",
		Help:      "Close attempts refused because the table did not balance.",
	})

	// RPCDuration observes handler latency by procedure and Connect code.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pokerledger",
		Name:      "rpc_duration_seconds",
		Help:      "Duration of RPC handlers.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure", "code"})
)

// RecordEvent increments the ledger event counter for kind.
func RecordEvent(kind string) {
	LedgerEvents.WithLabelValues(kind).Inc()
}
