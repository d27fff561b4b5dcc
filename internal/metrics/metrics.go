// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aimtrainer_sessions_started_total",
		Help: "Training sessions started.",
	})

	SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aimtrainer_sessions_completed_total",
		Help: "Training sessions that ran to timer expiry.",
	})

	Clicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aimtrainer_clicks_total",
		Help: "Shots fired during active sessions.",
	})

	Hits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aimtrainer_hits_total",
		Help: "Shots that intersected a target.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aimtrainer_active_sessions",
		Help: "Sessions currently in the active state.",
	})
)
