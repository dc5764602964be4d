package harvest

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a harvest run. All values
// originate from Viper so a run can be configured via files, env vars, or
// CLI flags; workers receive the struct by value and never consult
// globals.
type Config struct {
	RequestPath         string
	HostFile            string
	OutputRoot          string
	Concurrency         int
	FollowRedirects     bool
	StrictFilenameMatch bool
	TLSVerify           bool
	FallbackToHTTP      bool
	GracePeriod         time.Duration
	UserAgent           string
	ConnectTimeout      time.Duration
	TransferTimeout     time.Duration
	PollInterval        time.Duration
	MaxRedirects        int
	MaxBodyBytes        int64
	MetricsAddr         string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		RequestPath:         v.GetString("harvest.request_path"),
		HostFile:            v.GetString("harvest.host_file"),
		OutputRoot:          v.GetString("harvest.output_root"),
		Concurrency:         v.GetInt("harvest.concurrency"),
		FollowRedirects:     v.GetBool("harvest.follow_redirects"),
		StrictFilenameMatch: v.GetBool("harvest.strict_filename_match"),
		TLSVerify:           v.GetBool("harvest.tls_verify"),
		FallbackToHTTP:      v.GetBool("harvest.fallback_to_http"),
		GracePeriod:         v.GetDuration("harvest.grace_period"),
		UserAgent:           v.GetString("harvest.user_agent"),
		ConnectTimeout:      v.GetDuration("harvest.connect_timeout"),
		TransferTimeout:     v.GetDuration("harvest.transfer_timeout"),
		PollInterval:        v.GetDuration("harvest.poll_interval"),
		MaxRedirects:        v.GetInt("harvest.max_redirects"),
		MaxBodyBytes:        v.GetInt64("harvest.max_body_bytes"),
		MetricsAddr:         v.GetString("harvest.metrics_addr"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations. These are
// the only errors that abort a run before any worker is dispatched.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.RequestPath, "/") {
		return fmt.Errorf("harvest.request_path must start with '/'")
	}
	if c.HostFile == "" {
		return fmt.Errorf("harvest.host_file must be set")
	}
	if c.OutputRoot == "" {
		return fmt.Errorf("harvest.output_root must be set")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("harvest.concurrency must be > 0")
	}
	if c.GracePeriod < 0 {
		return fmt.Errorf("harvest.grace_period must be >= 0")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("harvest.user_agent must be set")
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("harvest.connect_timeout must be > 0")
	}
	if c.TransferTimeout <= 0 {
		return fmt.Errorf("harvest.transfer_timeout must be > 0")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("harvest.poll_interval must be > 0")
	}
	if c.MaxRedirects <= 0 {
		return fmt.Errorf("harvest.max_redirects must be > 0")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("harvest.max_body_bytes must be > 0")
	}
	return nil
}
