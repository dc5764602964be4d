package harvest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func serverHost(t *testing.T, server *httptest.Server) string {
	t.Helper()
	return strings.TrimPrefix(server.URL, "http://")
}

func transportConfig() Config {
	cfg := workerConfig()
	cfg.RequestPath = "/ads.txt"
	return cfg
}

func TestCollyTransport_Attempt(t *testing.T) {
	t.Run("captures status, body and headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/ads.txt", r.URL.Path)
			w.Header().Set("Content-Type", "text/plain")
			w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
			w.Write([]byte("contact=ads@example.com"))
		}))
		defer server.Close()

		transport := NewCollyTransport(transportConfig(), fakeClock{time.Now()}, nil)
		attempt, err := transport.Attempt(context.Background(), "http", serverHost(t, server))
		require.NoError(t, err)

		require.Equal(t, 200, attempt.StatusCode)
		require.Equal(t, []byte("contact=ads@example.com"), attempt.Body)
		require.EqualValues(t, 23, attempt.Bytes)
		require.Equal(t, "text/plain", attempt.Headers["Content-Type"])
		require.Equal(t, time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC), attempt.LastModified.UTC())
		require.Equal(t, server.URL+"/ads.txt", attempt.RequestURI)
	})

	t.Run("effective URI reflects the final redirect target", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/ads.txt":
				http.Redirect(w, r, "/moved/ads.txt", http.StatusMovedPermanently)
			case "/moved/ads.txt":
				w.Write([]byte("moved body"))
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		transport := NewCollyTransport(transportConfig(), fakeClock{time.Now()}, nil)
		attempt, err := transport.Attempt(context.Background(), "http", serverHost(t, server))
		require.NoError(t, err)

		require.Equal(t, 200, attempt.StatusCode)
		require.Equal(t, server.URL+"/moved/ads.txt", attempt.EffectiveURI)
		require.Equal(t, server.URL+"/ads.txt", attempt.RequestURI)
	})

	t.Run("redirect is surfaced as-is when following is disabled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/elsewhere", http.StatusFound)
		}))
		defer server.Close()

		cfg := transportConfig()
		cfg.FollowRedirects = false
		transport := NewCollyTransport(cfg, fakeClock{time.Now()}, nil)

		attempt, err := transport.Attempt(context.Background(), "http", serverHost(t, server))
		require.NoError(t, err)
		require.Equal(t, http.StatusFound, attempt.StatusCode)
	})

	t.Run("non-200 responses are returned, not errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("nope"))
		}))
		defer server.Close()

		transport := NewCollyTransport(transportConfig(), fakeClock{time.Now()}, nil)
		attempt, err := transport.Attempt(context.Background(), "http", serverHost(t, server))
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, attempt.StatusCode)
		require.Equal(t, []byte("nope"), attempt.Body)
	})

	t.Run("connection failure is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		host := serverHost(t, server)
		server.Close()

		transport := NewCollyTransport(transportConfig(), fakeClock{time.Now()}, nil)
		attempt, err := transport.Attempt(context.Background(), "http", host)
		require.Error(t, err)
		require.Nil(t, attempt)
	})

	t.Run("cancelled context aborts before dialing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		transport := NewCollyTransport(transportConfig(), fakeClock{time.Now()}, nil)
		attempt, err := transport.Attempt(ctx, "http", "example.invalid")
		require.ErrorIs(t, err, context.Canceled)
		require.Nil(t, attempt)
	})
}
