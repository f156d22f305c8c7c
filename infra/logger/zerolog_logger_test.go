package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestZerologAdapterTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := newZerologAdapter("builder", &buf)
	l.Infof("model built with %d variables", 22)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if line["component"] != "builder" {
		t.Fatalf("expected component builder, got %v", line["component"])
	}
	if !strings.Contains(buf.String(), "model built with 22 variables") {
		t.Fatalf("message missing from output: %s", buf.String())
	}
}

func TestZerologAdapterStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := newZerologAdapter("solver", &buf)
	l.Debugw("sweep finished", map[string]any{"restart": 3, "energy": -4.5})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if line["restart"] != float64(3) {
		t.Fatalf("expected restart field 3, got %v", line["restart"])
	}
	if line["energy"] != -4.5 {
		t.Fatalf("expected energy field -4.5, got %v", line["energy"])
	}
}

func TestNewZerologLoggerDevConsole(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debugf("ignored")
	l.Debugw("ignored", nil)
	l.Infof("ignored")
	l.Warnf("ignored")
	l.Errorf("ignored")
}
