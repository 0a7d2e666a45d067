package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics groups the counters exported on /metrics. Each Server owns its
// registry so tests can build many servers side by side.
type metrics struct {
	reg      *prometheus.Registry
	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	keys     *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordling_games_started_total",
			Help: "Games created, by word list.",
		}, []string{"list"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordling_games_finished_total",
			Help: "Games that reached a terminal state, by outcome.",
		}, []string{"outcome"}),
		keys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordling_keys_total",
			Help: "Raw key tokens received, by kind.",
		}, []string{"kind"}),
	}
	m.reg.MustRegister(m.started, m.finished, m.keys)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
