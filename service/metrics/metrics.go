package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the CLI.
// Following the explicit dependency injection pattern, this struct
// is passed to all components that need to record metrics.
type Metrics struct {
	registry *prometheus.Registry

	// Solana RPC Metrics
	solanaRPCCallsTotal   *prometheus.CounterVec
	solanaRPCCallDuration *prometheus.HistogramVec

	// Wallet Metrics
	lamportsRequestedTotal *prometheus.CounterVec

	// Command Metrics
	commandRunsTotal *prometheus.CounterVec
	commandDuration  *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, a fresh private registry is used so that a single
// invocation only ever exports its own samples.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		// Solana RPC Metrics
		solanaRPCCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solana_rpc_calls_total",
				Help: "Total number of Solana RPC calls by method and status",
			},
			[]string{"method", "status", "cluster"},
		),
		solanaRPCCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "solana_rpc_call_duration_seconds",
				Help:    "Duration of Solana RPC calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"method", "cluster"},
		),

		// Wallet Metrics
		lamportsRequestedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lamports_requested_total",
				Help: "Total lamports moved by successful airdrops and transfers",
			},
			[]string{"kind", "cluster"},
		),

		// Command Metrics
		commandRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cli_command_runs_total",
				Help: "Total number of CLI command invocations by outcome",
			},
			[]string{"command", "status"},
		),
		commandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cli_command_duration_seconds",
				Help:    "Wall-clock duration of CLI commands in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
}

// Solana RPC metric helpers

// RecordRPCCall records a Solana RPC call with duration.
func (m *Metrics) RecordRPCCall(method, status, cluster string, duration float64) {
	m.solanaRPCCallsTotal.WithLabelValues(method, status, cluster).Inc()
	m.solanaRPCCallDuration.WithLabelValues(method, cluster).Observe(duration)
}

// RecordLamportsRequested records lamports moved by an airdrop or transfer.
func (m *Metrics) RecordLamportsRequested(kind, cluster string, lamports uint64) {
	m.lamportsRequestedTotal.WithLabelValues(kind, cluster).Add(float64(lamports))
}

// Command metric helpers

// InstrumentCommand runs fn and records its outcome and duration under the
// given command name. The error from fn is returned unchanged.
func (m *Metrics) InstrumentCommand(command string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "success"
	if err != nil {
		status = "error"
	}
	m.commandRunsTotal.WithLabelValues(command, status).Inc()
	m.commandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
	return err
}

// Gatherer exposes the underlying registry for export.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all collected samples to path in the Prometheus text
// format, suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
