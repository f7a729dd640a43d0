package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		log     func(l *Logger)
		want    bool // should log
		level   string
		message string
	}{
		{
			name:    "info message",
			log:     func(l *Logger) { l.Info("test message", Fields{"sheet": "Resource Hubs"}) },
			want:    true,
			level:   "info",
			message: "test message",
		},
		{
			name: "debug below threshold",
			log:  func(l *Logger) { l.Debug("debug message", nil) },
			want: false,
		},
		{
			name:    "error with err",
			log:     func(l *Logger) { l.Error("error occurred", nil, errors.New("test error")) },
			want:    true,
			level:   "error",
			message: "error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(LevelInfo, &buf)

			tt.log(logger)

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Fatalf("logged = %v, want %v", logged, tt.want)
			}
			if !tt.want {
				return
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
			}
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %v", entry["level"], tt.level)
			}
			if entry["message"] != tt.message {
				t.Errorf("message = %v, want %v", entry["message"], tt.message)
			}
			if _, ok := entry["timestamp"]; !ok {
				t.Error("log entry missing timestamp")
			}
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Error("fetch failed", Fields{"sheet": "Language Learning", "status": 404}, errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if entry["sheet"] != "Language Learning" {
		t.Errorf("sheet = %v", entry["sheet"])
	}
	if entry["status"] != float64(404) {
		t.Errorf("status = %v", entry["status"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		log       func(l *Logger)
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, func(l *Logger) { l.Debug("test", nil) }, true},
		{"info logs at debug", LevelDebug, func(l *Logger) { l.Info("test", nil) }, true},
		{"debug doesn't log at info", LevelInfo, func(l *Logger) { l.Debug("test", nil) }, false},
		{"warn doesn't log at error", LevelError, func(l *Logger) { l.Warn("test", nil) }, false},
		{"error always logs", LevelDebug, func(l *Logger) { l.Error("test", nil, nil) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(tt.minLevel, &buf))

			if logged := buf.Len() > 0; logged != tt.shouldLog {
				t.Errorf("logged = %v, want %v", logged, tt.shouldLog)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" Error ", LevelError, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	l := New(Level("LOUD"), &bytes.Buffer{})
	if l.Level() != LevelInfo {
		t.Errorf("Level() = %q, want INFO", l.Level())
	}
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("sheets.fetched")
	m.IncrCounter("sheets.fetched")
	m.IncrCounter("sheets.fetched")

	snap := m.Snapshot()
	if snap.Counters["sheets.fetched"] != 3 {
		t.Errorf("Counters[sheets.fetched] = %v, want 3", snap.Counters["sheets.fetched"])
	}
	if snap.Counters["missing"] != 0 {
		t.Errorf("Counters[missing] = %v, want 0", snap.Counters["missing"])
	}
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics()

	m.SetGauge("entries.Resource Hubs", 12)
	m.SetGauge("entries.Resource Hubs", 14)

	if got := m.Snapshot().Gauges["entries.Resource Hubs"]; got != 14 {
		t.Errorf("Gauge = %v, want 14", got)
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("sheets.fetch", 100*time.Millisecond)
	m.RecordTiming("sheets.fetch", 200*time.Millisecond)
	m.RecordTiming("sheets.fetch", 150*time.Millisecond)

	want := TimingStats{Count: 3, Total: "450ms", Average: "150ms", Min: "100ms", Max: "200ms"}
	if got := m.Snapshot().Timings["sheets.fetch"]; got != want {
		t.Errorf("Timings[sheets.fetch] = %+v, want %+v", got, want)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("sheets.failed")
	m.SetGauge("entries.Data", 3)
	m.RecordTiming("sheets.fetch", time.Second)

	m.Reset()

	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Gauges) != 0 || len(snap.Timings) != 0 {
		t.Errorf("Snapshot() after Reset = %+v, want empty", snap)
	}
}

func TestSnapshot_JSONAndFields(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("sheets.failed")
	m.SetGauge("entries.Data", 3)
	m.RecordTiming("sheets.fetch", 2*time.Second)
	snap := m.Snapshot()

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var decoded map[string]map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded["counters"]["sheets.failed"] != float64(1) {
		t.Errorf("counters = %v", decoded["counters"])
	}

	fields := snap.Fields()
	if fields["sheets.failed"] != int64(1) {
		t.Errorf("Fields()[sheets.failed] = %v", fields["sheets.failed"])
	}
	if fields["entries.Data"] != float64(3) {
		t.Errorf("Fields()[entries.Data] = %v", fields["entries.Data"])
	}
	if fields["sheets.fetch.average"] != "2s" {
		t.Errorf("Fields()[sheets.fetch.average] = %v", fields["sheets.fetch.average"])
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(New(LevelInfo, &bytes.Buffer{}))

	Debug("test debug", nil)
	Info("test info", Fields{"key": "value"})
	Warn("test warning", nil)
	Error("test error", Fields{"component": "test"}, errors.New("test"))

	if lines := bytes.Count(buf.Bytes(), []byte("\n")); lines != 4 {
		t.Errorf("wrote %d lines, want 4", lines)
	}

	ResetMetrics()
	defer ResetMetrics()
	IncrCounter("test")
	SetGauge("test", 42.0)
	RecordTiming("test", time.Second)

	snap := MetricsSnapshot()
	if snap.Counters["test"] != 1 || snap.Gauges["test"] != 42 || snap.Timings["test"].Count != 1 {
		t.Errorf("MetricsSnapshot() = %+v", snap)
	}
}
