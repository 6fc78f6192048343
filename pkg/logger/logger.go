// Package logger wraps go.uber.org/zap the way the routing engine's
// call sites expect: New() returns a ready logger, selecting a
// development (console, colorized) encoder or a production (JSON) one
// based on the ENV viper key.
package logger

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// New builds a *zap.Logger. ENV=production (the default when unset)
// yields structured JSON logs; any other value yields the console
// encoder used during local development.
func New() (*zap.Logger, error) {
	viper.SetDefault("ENV", "production")

	if viper.GetString("ENV") == "production" {
		cfg := zap.NewProductionConfig()
		return cfg.Build()
	}

	cfg := zap.NewDevelopmentConfig()
	return cfg.Build()
}
