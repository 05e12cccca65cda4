// Package fetch downloads media URLs to local temporary files with
// bounded retries, a size ceiling and throttled progress reporting.
package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/gitkachoda/tg-api-hitter/internal/domain"
	"github.com/gitkachoda/tg-api-hitter/internal/telemetry"
)

// MaxDownloadSize is the hard ceiling imposed by the upload target's
// own file size limit (just under 2 GB).
const MaxDownloadSize = 1_990_000_000

const (
	chunkSize = 8 * 1024

	defaultMaxAttempts  = 3
	defaultRetryDelay   = 3 * time.Second
	defaultTimeout      = 3600 * time.Second
	defaultReportEvery  = 30 * time.Second
	defaultReportJitter = 5 * time.Second
)

// Progress is a snapshot of an in-flight transfer handed to the
// user-visible progress callback.
type Progress struct {
	Bytes   int64
	Total   int64 // -1 when the host did not declare a length
	Percent int   // -1 when Total is unknown
}

// ProgressFunc receives throttled progress updates during a download.
type ProgressFunc func(p Progress)

// Fetcher streams URLs to local files. The zero values of the tunable
// fields are replaced by defaults in NewFetcher; tests override them.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger

	MaxAttempts int
	RetryDelay  time.Duration
	MaxSize     int64
	Timeout     time.Duration

	// User-visible progress cadence: one report per ReportEvery plus
	// up to ReportJitter of random spread, to avoid hammering the chat
	// platform's edit rate limits in lockstep.
	ReportEvery  time.Duration
	ReportJitter time.Duration
}

// NewFetcher creates a fetcher with production defaults. TLS
// verification is disabled for compatibility with the observed
// upstream media hosts.
func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		logger:       logger,
		MaxAttempts:  defaultMaxAttempts,
		RetryDelay:   defaultRetryDelay,
		MaxSize:      MaxDownloadSize,
		Timeout:      defaultTimeout,
		ReportEvery:  defaultReportEvery,
		ReportJitter: defaultReportJitter,
	}
}

// Fetch downloads url into dest. The destination file is created (and
// truncated on each retry) by the fetcher but owned by the caller: on
// failure a partially written file may remain and the caller removes
// it. Transport errors and non-2xx statuses are retried up to the
// attempt budget with a fixed delay between attempts; a declared size
// above MaxSize aborts immediately without consuming retries.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string, onProgress ProgressFunc) error {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	telemetry.Inc(telemetry.DownloadsStarted)
	start := time.Now()

	attempt := 0
	op := func() error {
		attempt++
		if attempt > 1 {
			f.logger.Warn("Retrying download",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", f.MaxAttempts),
			)
		}
		return f.attempt(ctx, url, dest, onProgress)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.RetryDelay), uint64(f.MaxAttempts-1)),
		ctx,
	)

	if err := backoff.Retry(op, policy); err != nil {
		telemetry.Inc(telemetry.DownloadsFailed)
		var tooLarge *domain.TooLargeError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &domain.DownloadError{Err: err}
	}

	telemetry.Inc(telemetry.DownloadsSucceeded)
	telemetry.ObserveSince(telemetry.DownloadDuration, start)
	return nil
}

// attempt performs one download from byte 0 with fresh progress
// counters. Errors returned plain are retryable; backoff.Permanent
// marks the fatal ones.
func (f *Fetcher) attempt(ctx context.Context, url, dest string, onProgress ProgressFunc) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("media host returned status %d", resp.StatusCode)
	}

	total := resp.ContentLength
	if total > f.MaxSize {
		return backoff.Permanent(&domain.TooLargeError{Size: total, Limit: f.MaxSize})
	}

	out, err := os.Create(dest)
	if err != nil {
		return backoff.Permanent(err)
	}
	defer func() {
		// The file must be closed on every exit path before the
		// destination is handed back to the caller's cleanup.
		if cerr := out.Close(); cerr != nil && err == nil {
			err = backoff.Permanent(cerr)
		}
	}()

	state := newTransferState()
	buf := make([]byte, chunkSize)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return backoff.Permanent(werr)
			}
			state.written += int64(n)
			telemetry.Add(telemetry.DownloadBytes, float64(n))

			if state.written > f.MaxSize {
				return backoff.Permanent(&domain.TooLargeError{Size: state.written, Limit: f.MaxSize})
			}
			f.report(state, total, onProgress)
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}

// transferState holds per-attempt progress counters. A retry starts
// over with a fresh one.
type transferState struct {
	written     int64
	lastPercent int
	lastLogged  int
	nextReport  time.Time
}

func newTransferState() *transferState {
	return &transferState{
		lastPercent: -1,
	}
}

// report drives the two independent progress cadences: the coarse
// 10-point operational log and the time-throttled user callback. One
// never gates the other.
func (f *Fetcher) report(state *transferState, total int64, onProgress ProgressFunc) {
	pct := -1
	if total > 0 {
		pct = int(state.written * 100 / total)
	}

	if pct > 0 && pct/10 > state.lastLogged/10 {
		state.lastLogged = pct
		f.logger.Info("Download progress",
			zap.Int("percent", pct),
			zap.Int64("bytes", state.written),
		)
	}

	if onProgress == nil {
		return
	}
	now := time.Now()
	if now.Before(state.nextReport) {
		return
	}
	// Unchanged percentage: skip the edit even though the window
	// elapsed. Applies only when the total size is known.
	if pct >= 0 && pct == state.lastPercent {
		return
	}

	onProgress(Progress{Bytes: state.written, Total: total, Percent: pct})
	state.lastPercent = pct
	state.nextReport = now.Add(f.ReportEvery + randJitter(f.ReportJitter))
}

func randJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max)))
}
