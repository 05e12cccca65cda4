// Package telemetry provides Prometheus metrics for the relay pipeline.
package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	DownloadsStarted   prometheus.Counter
	DownloadsSucceeded prometheus.Counter
	DownloadsFailed    prometheus.Counter
	DownloadBytes      prometheus.Counter
	UploadsSucceeded   prometheus.Counter
	UploadsFailed      prometheus.Counter
	DeletionsExecuted  prometheus.Counter
	DeletionsFailed    prometheus.Counter

	// Histograms (seconds)
	DownloadDuration prometheus.Observer
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		DownloadsStarted = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_downloads_started_total", Help: "Number of media downloads started"})
		DownloadsSucceeded = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_downloads_succeeded_total", Help: "Number of media downloads succeeded"})
		DownloadsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_downloads_failed_total", Help: "Number of media downloads failed"})
		DownloadBytes = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_download_bytes_total", Help: "Total bytes downloaded from media hosts"})
		UploadsSucceeded = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_uploads_succeeded_total", Help: "Number of media messages sent"})
		UploadsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_uploads_failed_total", Help: "Number of media message sends that failed"})
		DeletionsExecuted = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_deletions_executed_total", Help: "Number of deferred message deletions executed"})
		DeletionsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "relay_deletions_failed_total", Help: "Number of deferred message deletions that failed"})
		DownloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "relay_download_duration_seconds", Help: "Download duration seconds", Buckets: prometheus.DefBuckets})
	})
}

// Inc increments a counter if it has been registered.
func Inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// Add adds to a counter if it has been registered.
func Add(c prometheus.Counter, v float64) {
	if c != nil {
		c.Add(v)
	}
}

// ObserveSince records elapsed seconds in obs if non-nil.
func ObserveSince(obs prometheus.Observer, start time.Time) {
	if obs != nil {
		obs.Observe(time.Since(start).Seconds())
	}
}
