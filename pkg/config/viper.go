// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a config
// file, environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// InitConfig initializes the application's configuration using Viper. It
// sets up default values, defines configuration search paths, and enables
// reading from environment variables. Call once at startup; a missing
// config file is fine (defaults and env apply), a malformed one is not.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/hostharvest/")
		viper.AddConfigPath("$HOME/.hostharvest")
	}

	viper.SetDefault("harvest.request_path", "/ads.txt")
	viper.SetDefault("harvest.host_file", "hosts.txt")
	viper.SetDefault("harvest.output_root", "data/harvest")
	viper.SetDefault("harvest.concurrency", 64)
	viper.SetDefault("harvest.follow_redirects", true)
	viper.SetDefault("harvest.strict_filename_match", false)
	viper.SetDefault("harvest.tls_verify", true)
	viper.SetDefault("harvest.fallback_to_http", true)
	viper.SetDefault("harvest.grace_period", "24h")
	viper.SetDefault("harvest.user_agent", "hostharvest/1.0 (+https://github.com/probelab/hostharvest)")
	viper.SetDefault("harvest.connect_timeout", "10s")
	viper.SetDefault("harvest.transfer_timeout", "30s")
	viper.SetDefault("harvest.poll_interval", "250ms")
	viper.SetDefault("harvest.max_redirects", 10)
	viper.SetDefault("harvest.max_body_bytes", 5*1024*1024)
	viper.SetDefault("harvest.metrics_addr", "")
	viper.SetDefault("log.development", false)

	viper.SetEnvPrefix("HOSTHARVEST") // e.g. HOSTHARVEST_HARVEST_CONCURRENCY=128
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
