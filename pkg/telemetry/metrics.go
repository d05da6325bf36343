// Package telemetry wires tracing and Prometheus metrics.
package telemetry

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Interactions counts likes, unlikes, comments and follow toggles.
	Interactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediashare",
		Name:      "interactions_total",
		Help:      "Interactions applied, by action.",
	}, []string{"action"})

	// Notifications counts notify attempts by type and outcome.
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediashare",
		Name:      "notifications_total",
		Help:      "Notification fan-out attempts, by type and outcome.",
	}, []string{"type", "outcome"})

	FeedPages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediashare",
		Name:      "feed_pages_total",
		Help:      "Feed pages served, by sort mode and audience.",
	}, []string{"sort", "audience"})
)

// NewMetricsServer serves /metrics on addr.
func NewMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

// ServeMetrics starts the metrics server in the background.
func ServeMetrics(srv *http.Server) {
	go func() {
		log.Printf("Metrics listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server: %v", err)
		}
	}()
}
