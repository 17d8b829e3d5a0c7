package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		want   zerolog.Level
	}{
		{"json_debug", "debug", "json", zerolog.DebugLevel},
		{"console_warn", "warn", "console", zerolog.WarnLevel},
		{"empty_defaults_to_info", "", "json", zerolog.InfoLevel},
		{"garbage_defaults_to_info", "loud", "json", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.level, tt.format)
			assert.Equal(t, tt.want, Logger.GetLevel())
			assert.Equal(t, tt.want, log.Logger.GetLevel())
		})
	}
}
