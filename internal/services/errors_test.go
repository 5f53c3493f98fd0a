package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"talkmatch/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("disk I/O error")
	err := services.Wrap(services.ErrStorage, "store", "insert match", "t1 -> v1", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrStorage) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"store", "insert match", "t1 -> v1"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, services.ErrStorage) {
		t.Fatalf("expected storage marker by default, got %v", err)
	}
	if !strings.Contains(err.Error(), "operation failed") {
		t.Fatalf("expected fallback detail, got %q", err)
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"validation", services.Wrap(services.ErrValidation, "overrides", "parse", "bad entry", nil), 2},
		{"configuration", fmt.Errorf("load: %w", services.ErrConfiguration), 2},
		{"not found", services.Wrap(services.ErrNotFound, "store", "open", "missing", nil), 2},
		{"busy", services.Wrap(services.ErrBusy, "reconcile", "lock", "held", nil), 3},
		{"storage", services.Wrap(services.ErrStorage, "store", "insert", "", errors.New("io")), 1},
		{"plain", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
