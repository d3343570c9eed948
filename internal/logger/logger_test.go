package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env       string
		wantDebug bool
	}{
		{env: "dev", wantDebug: true},
		{env: "development", wantDebug: true},
		{env: "production", wantDebug: false},
		{env: "", wantDebug: false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			log, err := New(tt.env)
			if err != nil {
				t.Fatalf("New(%q): %v", tt.env, err)
			}
			defer func() { _ = log.Sync() }()
			if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}
