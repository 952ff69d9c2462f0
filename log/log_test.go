package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: toSlogLevel(level)})
	return NewWithHandler(h)
}

func TestLogger_Subsystem(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, DEBUG)
	child := l.Subsystem("recvbuffer")

	child.Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}

	if entry["subsystem"] != "recvbuffer" {
		t.Fatalf("subsystem = %v, want %q", entry["subsystem"], "recvbuffer")
	}
	if entry["msg"] != "hello" {
		t.Fatalf("msg = %v, want %q", entry["msg"], "hello")
	}
}

func TestLogger_SubsystemChain(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, DEBUG)
	child := l.Subsystem("sendbuffer").With("peer", "abc")

	child.Info("forwarded")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}

	if entry["subsystem"] != "sendbuffer" {
		t.Fatalf("subsystem = %v, want %q", entry["subsystem"], "sendbuffer")
	}
	if entry["peer"] != "abc" {
		t.Fatalf("peer = %v, want %q", entry["peer"], "abc")
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		level  Level
		logFn  func(l *Logger)
		expect bool
	}{
		{INFO, func(l *Logger) { l.Debug("nope") }, false},
		{INFO, func(l *Logger) { l.Info("yes") }, true},
		{INFO, func(l *Logger) { l.Warn("yes") }, true},
		{INFO, func(l *Logger) { l.Error("yes") }, true},
		{WARN, func(l *Logger) { l.Info("nope") }, false},
		{WARN, func(l *Logger) { l.Warn("yes") }, true},
		{DEBUG, func(l *Logger) { l.Debug("yes") }, true},
	}

	for i, tt := range tests {
		var buf bytes.Buffer
		l := newTestLogger(&buf, tt.level)
		tt.logFn(l)

		got := buf.Len() > 0
		if got != tt.expect {
			t.Errorf("test %d: output=%v, want %v (level=%v, buf=%s)",
				i, got, tt.expect, tt.level, buf.String())
		}
	}
}

func TestDefaultLogger(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}

	var buf bytes.Buffer
	l := newTestLogger(&buf, INFO)
	SetDefault(l)
	defer SetDefault(New(INFO))

	Info("test info", "k", "v")

	if !strings.Contains(buf.String(), "test info") {
		t.Fatalf("output missing 'test info': %s", buf.String())
	}

	SetDefault(nil)
	if Default() != l {
		t.Fatal("SetDefault(nil) replaced the logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, DEBUG)
	SetDefault(l)
	defer SetDefault(New(INFO))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	out := buf.String()
	for _, msg := range []string{"d", "i", "w", "e"} {
		if !strings.Contains(out, msg) {
			t.Errorf("missing message %q in output", msg)
		}
	}
}

// NewDiscard is the nil-safe default ringbuffer's SendBuffer/RecvBuffer
// fall back to: it must never panic and must never write anything.
func TestNewDiscard(t *testing.T) {
	l := NewDiscard()
	l.Debug("should vanish")
	l.Error("should also vanish")
}

func TestToSlogLevelOrdering(t *testing.T) {
	if !(toSlogLevel(DEBUG) < toSlogLevel(INFO) &&
		toSlogLevel(INFO) < toSlogLevel(WARN) &&
		toSlogLevel(WARN) < toSlogLevel(ERROR) &&
		toSlogLevel(ERROR) < toSlogLevel(FATAL)) {
		t.Fatal("toSlogLevel does not preserve DEBUG < INFO < WARN < ERROR < FATAL")
	}
}
