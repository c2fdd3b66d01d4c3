package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the app's Prometheus collectors and the optional /metrics
// server that exposes them.
type Metrics struct {
	server *http.Server

	PollCycles    *prometheus.CounterVec // result: ok|error
	AlertsFetched prometheus.Counter
	AlertsNew     prometheus.Counter
	DupFiltered   prometheus.Counter
	Notifications *prometheus.CounterVec // by notifier
	LastSuccess   prometheus.Gauge
	CycleDur      prometheus.Summary
}

// New registers the collectors on the default registry. outstanding reports
// the number of notifications currently on screen.
func New(listenAddr string, outstanding func() int) *Metrics {
	return NewWith(prometheus.DefaultRegisterer, listenAddr, outstanding)
}

// NewWith registers on a caller-supplied registry (tests use a fresh one).
func NewWith(reg prometheus.Registerer, listenAddr string, outstanding func() int) *Metrics {
	m := &Metrics{}
	m.PollCycles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lolbin_monitor",
		Name:      "poll_cycles_total",
		Help:      "Poll cycles by result",
	}, []string{"result"})
	m.AlertsFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lolbin_monitor",
		Name:      "alerts_fetched_total",
		Help:      "Alert records returned by the backend",
	})
	m.AlertsNew = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lolbin_monitor",
		Name:      "alerts_new_total",
		Help:      "Alerts not seen before (notified)",
	})
	m.DupFiltered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lolbin_monitor",
		Name:      "duplicates_filtered_total",
		Help:      "Alert records dropped by the seen set",
	})
	m.Notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lolbin_monitor",
		Name:      "notifications_total",
		Help:      "Notifications emitted by notifier",
	}, []string{"notifier"})
	m.LastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lolbin_monitor",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful poll cycle",
	})
	m.CycleDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "lolbin_monitor",
		Name:      "poll_cycle_duration_seconds",
		Help:      "Time spent per poll cycle",
	})
	openGauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "lolbin_monitor",
		Name:      "notifications_open",
		Help:      "Notifications currently on screen",
	}, func() float64 { return float64(outstanding()) })

	reg.MustRegister(
		m.PollCycles, m.AlertsFetched, m.AlertsNew, m.DupFiltered,
		m.Notifications, m.LastSuccess, m.CycleDur, openGauge,
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	m.server = &http.Server{
		Addr:         listenAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return m
}

func (m *Metrics) Serve() error                       { return m.server.ListenAndServe() }
func (m *Metrics) Shutdown(ctx context.Context) error { return m.server.Shutdown(ctx) }
