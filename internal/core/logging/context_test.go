package logging

import (
	"context"
	"testing"
)

func TestWithSessionID(t *testing.T) {
	ctx := WithSessionID(context.Background(), "b1946ac9")

	if got := GetSessionID(ctx); got != "b1946ac9" {
		t.Errorf("GetSessionID() = %q, want %q", got, "b1946ac9")
	}
}

func TestWithSource(t *testing.T) {
	ctx := WithSource(context.Background(), "/var/log/ttyUSB0.log")

	if got := GetSource(ctx); got != "/var/log/ttyUSB0.log" {
		t.Errorf("GetSource() = %q, want %q", got, "/var/log/ttyUSB0.log")
	}
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetSessionID(ctx); got != "" {
		t.Errorf("GetSessionID() = %q, want empty string", got)
	}
	if got := GetSource(ctx); got != "" {
		t.Errorf("GetSource() = %q, want empty string", got)
	}
}

func TestKeysDoNotCollide(t *testing.T) {
	ctx := WithSessionID(context.Background(), "s")
	ctx = WithSource(ctx, "src")

	if got := GetSessionID(ctx); got != "s" {
		t.Errorf("GetSessionID() = %q, want %q", got, "s")
	}
	if got := GetSource(ctx); got != "src" {
		t.Errorf("GetSource() = %q, want %q", got, "src")
	}
}
