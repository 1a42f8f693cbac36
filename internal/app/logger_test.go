//go:build !integration

package app

import (
	"testing"

	"github.com/guttosm/kitchen-receipt-service/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel zerolog.Level
	}{
		{
			name:      "empty level defaults to info",
			cfg:       config.LogConfig{},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "debug level",
			cfg:       config.LogConfig{Level: "debug"},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name:      "pretty output",
			cfg:       config.LogConfig{Level: "warn", Pretty: true},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "error level",
			cfg:       config.LogConfig{Level: "error"},
			wantLevel: zerolog.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() { InitializeLogger(config.LogConfig{Level: "error"}) })

			assert.NotPanics(t, func() {
				InitializeLogger(tt.cfg)
			})
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}
