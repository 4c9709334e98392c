package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker", "cli"} {
		t.Run(env, func(t *testing.T) {
			l, err := NewLogger(env)
			if err != nil {
				t.Fatalf("NewLogger(%q): %v", env, err)
			}
			if l == nil {
				t.Fatal("expected logger")
			}
		})
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) {
		t.Error("info must be disabled at warn level")
	}
	if !l.Core().Enabled(zap.WarnLevel) {
		t.Error("warn must be enabled at warn level")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must never return nil")
	}

	core, logs := observer.New(zap.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))
	FromContext(ctx).Info("hello")
	if logs.Len() != 1 {
		t.Errorf("expected 1 log entry, got %d", logs.Len())
	}
}

func TestFromContextOr(t *testing.T) {
	fallbackCore, fallbackLogs := observer.New(zap.InfoLevel)
	fallback := zap.New(fallbackCore)

	FromContextOr(context.Background(), fallback).Info("fallback")
	if fallbackLogs.Len() != 1 {
		t.Fatalf("expected fallback logger to be used, got %d entries", fallbackLogs.Len())
	}

	ctxCore, ctxLogs := observer.New(zap.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(ctxCore))
	FromContextOr(ctx, fallback).Info("scoped")
	if ctxLogs.Len() != 1 || fallbackLogs.Len() != 1 {
		t.Errorf("expected context logger to win, ctx=%d fallback=%d", ctxLogs.Len(), fallbackLogs.Len())
	}
}
