package harvest

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// FetchWorker executes the per-host fetch state machine: grace check,
// HTTPS attempt, optional HTTP fallback, response validation, persistence.
// One FetchTarget is created per Process call and discarded when it
// returns; nothing is retried within a run.
type FetchWorker struct {
	cfg       Config
	transport Transport
	sink      Sink
	clock     Clock
	logger    *zap.Logger
}

var _ HostProcessor = (*FetchWorker)(nil)

// NewFetchWorker constructs a FetchWorker. The Config is copied; workers
// never consult shared mutable state.
func NewFetchWorker(cfg Config, transport Transport, sink Sink, clock Clock, logger *zap.Logger) *FetchWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FetchWorker{
		cfg:       cfg,
		transport: transport,
		sink:      sink,
		clock:     clock,
		logger:    logger,
	}
}

// Process runs the state machine for one host. All failures are terminal
// for the host and contained here; the scheduler only sees the result.
func (w *FetchWorker) Process(ctx context.Context, hostname string) HostResult {
	outputPath := OutputFilePath(w.cfg.OutputRoot, hostname, w.cfg.RequestPath)

	// Grace check runs before any network activity. A failed host from a
	// prior run left no file behind, so it is naturally retried here.
	if w.cfg.GracePeriod > 0 {
		cutoff := w.clock.Now().Add(-w.cfg.GracePeriod)
		if w.sink.Fresh(outputPath, cutoff) {
			w.logger.Info("Skipping fresh host",
				zap.String("host", hostname),
				zap.String("path", outputPath),
			)
			TotalSkippedFresh.Inc()
			return HostResult{Hostname: hostname, Outcome: OutcomeSkippedFresh}
		}
	}

	target, ok := w.fetch(ctx, hostname)
	if !ok {
		return w.abort(hostname, "no usable response from any protocol")
	}

	if target.ResponseCode != 200 {
		return w.abort(hostname, fmt.Sprintf("final status %d", target.ResponseCode))
	}

	if reason, ok := w.checkRedirectTarget(target); !ok {
		return w.abort(hostname, reason)
	}

	if err := w.sink.Save(outputPath, target.Body); err != nil {
		w.logger.Error("Persist failed",
			zap.String("host", hostname),
			zap.String("path", outputPath),
			zap.Error(err),
		)
		TotalAborted.Inc()
		return HostResult{Hostname: hostname, Outcome: OutcomeAborted, Reason: "write failed"}
	}

	w.logger.Info("Saved response",
		zap.String("host", hostname),
		zap.String("path", outputPath),
		zap.Int64("bytes", target.Bytes),
	)
	TotalSaved.Inc()
	return HostResult{Hostname: hostname, Outcome: OutcomeSaved, Bytes: target.Bytes}
}

// fetch tries HTTPS first and falls back to plain HTTP when enabled. An
// attempt counts as failed when the transport errors or yields an empty
// body.
func (w *FetchWorker) fetch(ctx context.Context, hostname string) (*FetchTarget, bool) {
	if target := w.attempt(ctx, "https", hostname); target != nil {
		return target, true
	}
	if !w.cfg.FallbackToHTTP {
		return nil, false
	}
	if target := w.attempt(ctx, "http", hostname); target != nil {
		return target, true
	}
	return nil, false
}

func (w *FetchWorker) attempt(ctx context.Context, scheme, hostname string) *FetchTarget {
	attempt, err := w.transport.Attempt(ctx, scheme, hostname)
	if err != nil {
		w.logger.Debug("Transport attempt failed",
			zap.String("host", hostname),
			zap.String("scheme", scheme),
			zap.Error(err),
		)
		return nil
	}
	if len(attempt.Body) == 0 {
		w.logger.Debug("Empty response body",
			zap.String("host", hostname),
			zap.String("scheme", scheme),
			zap.Int("status", attempt.StatusCode),
		)
		return nil
	}
	return &FetchTarget{
		Hostname:         hostname,
		RequestURI:       attempt.RequestURI,
		EffectiveURI:     attempt.EffectiveURI,
		ResponseCode:     attempt.StatusCode,
		ResponseHeaders:  attempt.Headers,
		Bytes:            attempt.Bytes,
		FileModifiedTime: attempt.LastModified,
		RequestTimestamp: attempt.RequestedAt,
		Body:             attempt.Body,
	}
}

// checkRedirectTarget enforces strict filename matching: the post-redirect
// URI path must equal the configured request path exactly. Index requests
// ("/") are exempt, since redirects to arbitrary index pages are expected.
func (w *FetchWorker) checkRedirectTarget(target *FetchTarget) (string, bool) {
	if !w.cfg.StrictFilenameMatch || w.cfg.RequestPath == "/" {
		return "", true
	}
	effective, err := url.Parse(target.EffectiveURI)
	if err != nil {
		return fmt.Sprintf("unparseable effective URI %q", target.EffectiveURI), false
	}
	if effective.EscapedPath() != w.cfg.RequestPath {
		return fmt.Sprintf("redirected to %q, wanted %q", effective.EscapedPath(), w.cfg.RequestPath), false
	}
	return "", true
}

func (w *FetchWorker) abort(hostname, reason string) HostResult {
	w.logger.Debug("Host aborted",
		zap.String("host", hostname),
		zap.String("reason", reason),
	)
	TotalAborted.Inc()
	return HostResult{Hostname: hostname, Outcome: OutcomeAborted, Reason: reason}
}
