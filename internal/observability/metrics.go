package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registrationCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "guitaa_api",
		Subsystem: "users",
		Name:      "registrations_total",
		Help:      "Number of accounts created since process start.",
	})
	loginCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "guitaa_api",
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Login attempts partitioned by outcome.",
	}, []string{"outcome"})
	historyPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "guitaa_api",
		Subsystem: "history",
		Name:      "last_entry_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent history entry persisted.",
	})
)

func init() {
	prometheus.MustRegister(registrationCounter, loginCounter, historyPersistGauge)
}

// RecordRegistration counts a successful account creation.
func RecordRegistration() {
	registrationCounter.Inc()
}

// RecordLogin counts a login attempt by outcome ("success" or "failure").
func RecordLogin(outcome string) {
	loginCounter.WithLabelValues(outcome).Inc()
}

// RecordHistoryPersisted updates the persistence watermark gauge.
func RecordHistoryPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	historyPersistGauge.Set(float64(ts.Unix()))
}
