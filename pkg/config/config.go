// Package config wraps github.com/spf13/viper, following pkg/util's
// ReadConfig plus the viper.SetDefault pattern used to wire HTTP serving
// parameters. Decoder algorithm coefficients are fixed by spec and are
// never configurable; only deployment-facing knobs live here.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load reads ./data/config.{yaml,json,...} if present. A missing config
// file is not an error: every key has a sane default set by Defaults().
func Load() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")

	Defaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// Defaults installs every key this module reads, so Load never needs a
// config file to produce a usable HTTP server or CLI run.
func Defaults() {
	viper.SetDefault("ENV", "production")

	viper.SetDefault("API_PORT", 8080)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "5s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "3s")
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("VICINITY_CANDIDATES", 10)
	viper.SetDefault("ROAD_GRAPH_SOURCE", "./data/graph.sqlite")
}

// HTTPTimeout is a small convenience so callers don't sprinkle
// viper.GetDuration everywhere.
func HTTPTimeout() time.Duration {
	return viper.GetDuration("API_TIMEOUT")
}

// VicinityCandidates is the configured k passed to FindClosestEdges
// (openlr.Decoder's vicinity lookups): how many nearby real edges a
// waypoint or reconstruction query considers.
func VicinityCandidates() int {
	return viper.GetInt("VICINITY_CANDIDATES")
}

// RoadGraphSource is the configured default location of the road graph's
// sqlite-backed RoadInfo, used when a binary's own flag is left unset.
func RoadGraphSource() string {
	return viper.GetString("ROAD_GRAPH_SOURCE")
}
