package harvest

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sync"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// CollyTransport implements Transport using a Colly collector per
// attempt. Each attempt is fully isolated: its own cookie jar, its own
// connection (keep-alives disabled, Connection: close), its own redirect
// budget.
type CollyTransport struct {
	cfg    Config
	clock  Clock
	logger *zap.Logger
}

var _ Transport = (*CollyTransport)(nil)

// NewCollyTransport constructs a configured Colly-based Transport.
func NewCollyTransport(cfg Config, clock Clock, logger *zap.Logger) *CollyTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollyTransport{cfg: cfg, clock: clock, logger: logger}
}

type attemptResult struct {
	attempt *Attempt
	err     error
}

// Attempt issues one GET of scheme://hostname + the configured request
// path. The returned error covers low-level transport failures only;
// HTTP-level outcomes (status, redirect target) live in the Attempt.
func (t *CollyTransport) Attempt(ctx context.Context, scheme, hostname string) (*Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestURI := fmt.Sprintf("%s://%s%s", scheme, hostname, t.cfg.RequestPath)
	requestedAt := t.clock.Now()

	collector, err := t.newCollector()
	if err != nil {
		return nil, err
	}

	resultCh := make(chan attemptResult, 1)
	var once sync.Once
	send := func(res attemptResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Connection", "close")
		TotalRequests.Inc()
	})

	collector.OnResponse(func(r *colly.Response) {
		headers := make(map[string]string)
		if r.Headers != nil {
			for name, values := range *r.Headers {
				if len(values) > 0 {
					headers[name] = values[len(values)-1]
				}
			}
		}
		attempt := &Attempt{
			RequestURI:   requestURI,
			EffectiveURI: r.Request.URL.String(),
			StatusCode:   r.StatusCode,
			Headers:      headers,
			Body:         append([]byte{}, r.Body...),
			Bytes:        int64(len(r.Body)),
			RequestedAt:  requestedAt,
		}
		if lm := headers["Last-Modified"]; lm != "" {
			if parsed, perr := http.ParseTime(lm); perr == nil {
				attempt.LastModified = parsed
			}
		}
		send(attemptResult{attempt: attempt})
	})

	collector.OnError(func(_ *colly.Response, cerr error) {
		if cerr == nil {
			cerr = errors.New("unknown transport error")
		}
		send(attemptResult{err: cerr})
	})

	if err := collector.Visit(requestURI); err != nil {
		TotalRequestErrors.Inc()
		return nil, fmt.Errorf("visit %s: %w", requestURI, err)
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if res.err != nil {
			TotalRequestErrors.Inc()
			return nil, fmt.Errorf("fetch %s: %w", requestURI, res.err)
		}
		return res.attempt, nil
	default:
		TotalRequestErrors.Inc()
		return nil, fmt.Errorf("fetch %s: no result", requestURI)
	}
}

func (t *CollyTransport) newCollector() (*colly.Collector, error) {
	collector := colly.NewCollector(
		colly.UserAgent(t.cfg.UserAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
		colly.ParseHTTPErrorResponse(),
		colly.MaxBodySize(int(t.cfg.MaxBodyBytes)),
	)
	collector.SetRequestTimeout(t.cfg.TransferTimeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: t.cfg.ConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: t.cfg.ConnectTimeout,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: !t.cfg.TLSVerify},
		DisableKeepAlives:   true,
		ForceAttemptHTTP2:   true,
	})

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	collector.SetCookieJar(jar)

	maxRedirects := t.cfg.MaxRedirects
	follow := t.cfg.FollowRedirects
	collector.SetRedirectHandler(func(_ *http.Request, via []*http.Request) error {
		if !follow {
			return http.ErrUseLastResponse
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	})

	return collector, nil
}
