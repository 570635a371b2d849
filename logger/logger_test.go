package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/op/go-logging"
)

func TestElapsed(t *testing.T) {
	tests := map[time.Duration]string{
		0:                              "0h 0m 0s",
		59 * time.Second:               "0h 0m 59s",
		60 * time.Second:               "0h 1m 0s",
		61*time.Minute + 5*time.Second: "1h 1m 5s",
		1500 * time.Millisecond:        "0h 0m 2s",

		26*time.Hour + 59*time.Minute + 59*time.Second: "26h 59m 59s",
	}
	for d, want := range tests {
		if got := Elapsed(d); got != want {
			t.Fatalf("unexpected format of %v; got %q, want %q", d, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]logging.Level{
		"critical": logging.CRITICAL,
		"Warning":  logging.WARNING,
		" DEBUG ":  logging.DEBUG,
		"info":     logging.INFO,
	} {
		got, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", name, err)
		}
		if got != want {
			t.Fatalf("unexpected level of %q; got %v, want %v", name, got, want)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewLoggerTo_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "warning", "Test")
	log.Info("hidden message")
	log.Warning("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Fatalf("info message must be filtered at warning level; got %q", out)
	}
	if !strings.Contains(out, "[Test] visible message") {
		t.Fatalf("warning message missing; got %q", out)
	}
}

func TestNewLoggerTo_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "chatty", "Test")
	log.Debug("debug message")
	log.Info("info message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Fatalf("debug message must be filtered; got %q", out)
	}
	if !strings.Contains(out, "info message") {
		t.Fatalf("info message missing; got %q", out)
	}
}

func TestNewLoggerTo_LoggersAreIndependent(t *testing.T) {
	var quiet, verbose bytes.Buffer
	q := NewLoggerTo(&quiet, "error", "Quiet")
	v := NewLoggerTo(&verbose, "debug", "Verbose")
	q.Notice("quiet notice")
	v.Debug("verbose debug")

	if quiet.Len() != 0 {
		t.Fatalf("quiet logger wrote %q", quiet.String())
	}
	if strings.Contains(verbose.String(), "quiet notice") || !strings.Contains(verbose.String(), "verbose debug") {
		t.Fatalf("unexpected verbose output %q", verbose.String())
	}
}
