package harvest

import (
	"context"
	"time"
)

// Transport performs one GET attempt over the given scheme. A non-nil
// error means the attempt failed below the HTTP layer (DNS, connect, TLS,
// timeout); HTTP-level outcomes are captured in the Attempt.
type Transport interface {
	Attempt(ctx context.Context, scheme, hostname string) (*Attempt, error)
}

// Sink persists fetched bodies and answers freshness checks against
// previously written files.
type Sink interface {
	// Fresh reports whether path exists and was modified after cutoff.
	Fresh(path string, cutoff time.Time) bool
	Save(path string, body []byte) error
}

// HostSource yields raw host-list lines lazily. Next returns false once
// the source is exhausted; Err reports a read failure, if any.
type HostSource interface {
	Next() (string, bool)
	Err() error
	Close() error
}

// HostProcessor runs the complete per-host fetch state machine.
type HostProcessor interface {
	Process(ctx context.Context, hostname string) HostResult
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
