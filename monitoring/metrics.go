package monitoring

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	paymentInitiations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_initiations_total",
			Help: "Total payment initiation attempts",
		},
		[]string{"status"},
	)

	paymentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_outcomes_total",
			Help: "Total resolved payment outcomes",
		},
		[]string{"status", "verified"},
	)

	attendanceToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_toggles_total",
			Help: "Total attendance toggle operations",
		},
		[]string{"action"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of payment gateway requests",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"operation"},
	)
)

// TrackInitiation counts one payment initiation attempt by outcome.
func TrackInitiation(status string) {
	paymentInitiations.WithLabelValues(status).Inc()
}

// TrackOutcome counts one resolved payment outcome.
func TrackOutcome(status string, verified bool) {
	v := "false"
	if verified {
		v = "true"
	}
	paymentOutcomes.WithLabelValues(status, v).Inc()
}

// TrackAttendanceToggle counts one attendance change ("join" or "leave").
func TrackAttendanceToggle(action string) {
	attendanceToggles.WithLabelValues(action).Inc()
}

// TrackGatewayRequest records the duration of one gateway call.
func TrackGatewayRequest(operation string, duration time.Duration) {
	gatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Serve exposes the Prometheus endpoint on its own listener.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("metrics server stopped", "err", err)
		}
	}()
}
