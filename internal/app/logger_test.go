//go:build !integration

package app

import (
	"testing"

	"github.com/guttosm/count-service/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		name string
		cfg  config.LoggingConfig
		want zerolog.Level
	}{
		{"default level", config.LoggingConfig{}, zerolog.InfoLevel},
		{"debug", config.LoggingConfig{Level: "debug"}, zerolog.DebugLevel},
		{"pretty warn", config.LoggingConfig{Level: "warn", Pretty: true}, zerolog.WarnLevel},
		{"unknown level", config.LoggingConfig{Level: "loud"}, zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitializeLogger(tt.cfg)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}
