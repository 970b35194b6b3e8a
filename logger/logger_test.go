package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	if l := NewFromEnv("env-svc"); l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "ssehub", &buf)

	l.WithComponent("sse").Info("broadcast finished", RoundFields("send_text", 3, 1, 20*time.Millisecond))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "broadcast finished" {
		t.Errorf("unexpected message: %v", entry["message"])
	}
	if entry[FieldComponent] != "sse" {
		t.Errorf("expected component=sse, got %v", entry[FieldComponent])
	}
	if entry["service"] != "ssehub" {
		t.Errorf("expected service=ssehub, got %v", entry["service"])
	}
	if entry[FieldAttempted] != float64(3) || entry[FieldFailed] != float64(1) {
		t.Errorf("unexpected round fields: %v", entry)
	}
}

func TestNewWithWriter_ConsoleNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "ssehub", &buf)
	l.Warn("client slow", ClientFields("abc", "send_bytes"))

	out := buf.String()
	if !strings.Contains(out, "[SSE][WRN]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "client_id:") {
		t.Errorf("expected client_id field, got %q", out)
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	ctx := ContextWithRequestID(context.Background(), "req-1")
	l.WithContext(ctx).Info("hello")

	if !strings.Contains(buf.String(), `"request_id":"req-1"`) {
		t.Errorf("expected request id in output, got %q", buf.String())
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	l.WithFields(map[string]interface{}{"key": "value"}).WithError(fmt.Errorf("boom")).Error("failed")

	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected fields in output, got %q", out)
	}
}

func TestInit(t *testing.T) {
	Init(&Config{ServiceName: "ssehub", Format: "json"})
	gl := GetGlobalLogger()
	if gl == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	if gl.service != "ssehub" {
		t.Errorf("expected service 'ssehub', got %q", gl.service)
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	if l := GetGlobalLogger(); l == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	Init(&Config{Level: "debug", Format: "console", Output: "stdout"})
	// These should not panic
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom-component")
	Register("my-component", l)

	if got := Get("my-component"); got != l {
		t.Error("expected Get to return the registered logger")
	}
	if got := Get("unregistered-component"); got == nil {
		t.Fatal("expected non-nil logger for unregistered component")
	}
}

func TestRegisterDefaults(t *testing.T) {
	Init(&Config{Level: "info", Format: "json", Output: "stdout"})
	RegisterDefaults("sse", "server")

	for _, name := range []string{"sse", "server"} {
		if got := Get(name); got == nil {
			t.Errorf("expected non-nil logger for %q", name)
		}
	}
}

func TestFields(t *testing.T) {
	result := Fields("op", "broadcast", "attempted", 4, "trailing")
	if result["op"] != "broadcast" || result["attempted"] != 4 {
		t.Errorf("unexpected fields: %v", result)
	}
	if _, ok := result["trailing"]; ok {
		t.Error("expected odd trailing key to be dropped")
	}
	if got := Fields(123, "value", "key", "val"); len(got) != 1 || got["key"] != "val" {
		t.Errorf("expected non-string key skipped, got %v", got)
	}
}

func TestErrorFields(t *testing.T) {
	fields := ErrorFields("send_event", fmt.Errorf("something broke"))
	if fields[FieldOperation] != "send_event" {
		t.Errorf("expected operation 'send_event', got %v", fields[FieldOperation])
	}
	if fields[FieldError] != "something broke" {
		t.Errorf("expected error 'something broke', got %v", fields[FieldError])
	}
}

func TestMergeWithError(t *testing.T) {
	err := fmt.Errorf("test error")
	result := MergeWithError(map[string]interface{}{"op": "save"}, err)
	if result[FieldError] != "test error" || result["op"] != "save" {
		t.Errorf("unexpected merge result: %v", result)
	}
	if got := MergeWithError(nil, err); got[FieldError] != "test error" {
		t.Errorf("expected error field from nil map, got %v", got[FieldError])
	}
}
