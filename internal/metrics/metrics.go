// Package metrics exposes Prometheus counters for the state layer.
// Collection is always on; scraping is opt-in via the METRICS_ADDR config.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Logins counts login attempts by outcome: admin, student, invalid.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "refresko",
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	// Submissions counts payment submissions by outcome: ok,
	// missing_screenshot, missing_utr, invalid_utr, duplicate_utr, error.
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "refresko",
		Name:      "payment_submissions_total",
		Help:      "Payment submission attempts by outcome.",
	}, []string{"outcome"})

	// ScreenshotWritesSkipped counts screenshot persistence failures that
	// were swallowed because the submission itself had already committed.
	ScreenshotWritesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "refresko",
		Name:      "screenshot_writes_skipped_total",
		Help:      "Screenshot payloads dropped due to store capacity.",
	})

	// NotifierEvents counts change notifications by topic.
	NotifierEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "refresko",
		Name:      "notifier_events_total",
		Help:      "Change notifier events observed by topic.",
	}, []string{"topic"})
)

// Handler returns the scrape handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
