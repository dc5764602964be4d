package harvest

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func validViper() *viper.Viper {
	v := viper.New()
	v.Set("harvest.request_path", "/ads.txt")
	v.Set("harvest.host_file", "hosts.txt")
	v.Set("harvest.output_root", "out")
	v.Set("harvest.concurrency", 8)
	v.Set("harvest.follow_redirects", true)
	v.Set("harvest.strict_filename_match", true)
	v.Set("harvest.tls_verify", true)
	v.Set("harvest.fallback_to_http", true)
	v.Set("harvest.grace_period", "24h")
	v.Set("harvest.user_agent", "test/1.0")
	v.Set("harvest.connect_timeout", "5s")
	v.Set("harvest.transfer_timeout", "20s")
	v.Set("harvest.poll_interval", "100ms")
	v.Set("harvest.max_redirects", 10)
	v.Set("harvest.max_body_bytes", 1024)
	return v
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads all knobs", func(t *testing.T) {
		cfg, err := LoadConfig(validViper())
		require.NoError(t, err)
		require.Equal(t, "/ads.txt", cfg.RequestPath)
		require.Equal(t, 8, cfg.Concurrency)
		require.Equal(t, 24*time.Hour, cfg.GracePeriod)
		require.Equal(t, 100*time.Millisecond, cfg.PollInterval)
		require.True(t, cfg.StrictFilenameMatch)
		require.EqualValues(t, 1024, cfg.MaxBodyBytes)
	})

	t.Run("rejects request path without leading slash", func(t *testing.T) {
		v := validViper()
		v.Set("harvest.request_path", "ads.txt")
		_, err := LoadConfig(v)
		require.ErrorContains(t, err, "request_path")
	})

	t.Run("rejects zero concurrency", func(t *testing.T) {
		v := validViper()
		v.Set("harvest.concurrency", 0)
		_, err := LoadConfig(v)
		require.ErrorContains(t, err, "concurrency")
	})

	t.Run("rejects missing output root", func(t *testing.T) {
		v := validViper()
		v.Set("harvest.output_root", "")
		_, err := LoadConfig(v)
		require.ErrorContains(t, err, "output_root")
	})

	t.Run("rejects negative grace period", func(t *testing.T) {
		v := validViper()
		v.Set("harvest.grace_period", "-1h")
		_, err := LoadConfig(v)
		require.ErrorContains(t, err, "grace_period")
	})

	t.Run("rejects zero timeouts", func(t *testing.T) {
		v := validViper()
		v.Set("harvest.transfer_timeout", "0s")
		_, err := LoadConfig(v)
		require.ErrorContains(t, err, "transfer_timeout")
	})
}
