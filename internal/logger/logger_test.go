package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	cfg := Config(false, false)
	if cfg.Encoding != "console" {
		t.Fatalf("expected console encoding, got %q", cfg.Encoding)
	}
	if cfg.Level.Level() != zapcore.InfoLevel {
		t.Fatalf("expected info level, got %s", cfg.Level.Level())
	}
	if len(cfg.OutputPaths) != 1 || cfg.OutputPaths[0] != "stderr" {
		t.Fatalf("expected stderr output, got %v", cfg.OutputPaths)
	}

	cfg = Config(true, true)
	if cfg.Encoding != "json" {
		t.Fatalf("expected json encoding, got %q", cfg.Encoding)
	}
	if cfg.Level.Level() != zapcore.DebugLevel {
		t.Fatalf("expected debug level, got %s", cfg.Level.Level())
	}
	if cfg.EncoderConfig.MessageKey != "step" {
		t.Fatalf("unexpected message key %q", cfg.EncoderConfig.MessageKey)
	}
}

func TestNew(t *testing.T) {
	l, err := New(true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug must be disabled without the debug flag")
	}
}
