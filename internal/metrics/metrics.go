// Package metrics holds the prometheus collectors of the gateway.
//
// Every method is safe on a nil *Metrics so services can run without them.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dashboard"

// Result label values.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultInvalid = "invalid"
	ResultIgnored = "ignored"
)

type Metrics struct {
	registry *prometheus.Registry

	polls        *prometheus.CounterVec
	pollDuration prometheus.Histogram
	commands     *prometheus.CounterVec
	saveChoices  *prometheus.CounterVec
	wsClients    prometheus.Gauge
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		polls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Backend poll cycles by result.",
		}, []string{"result"}),
		pollDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Duration of a backend poll cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Operator commands by result.",
		}, []string{"result"}),
		saveChoices: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_choices_total",
			Help:      "Save confirmation choices by choice and result.",
		}, []string{"choice", "result"}),
		wsClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_clients",
			Help:      "Connected websocket clients.",
		}),
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObservePoll(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(result).Inc()
	m.pollDuration.Observe(d.Seconds())
}

func (m *Metrics) CountCommand(result string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(result).Inc()
}

func (m *Metrics) CountSaveChoice(choice, result string) {
	if m == nil {
		return
	}
	m.saveChoices.WithLabelValues(choice, result).Inc()
}

func (m *Metrics) WSConnected() {
	if m == nil {
		return
	}
	m.wsClients.Inc()
}

func (m *Metrics) WSDisconnected() {
	if m == nil {
		return
	}
	m.wsClients.Dec()
}
