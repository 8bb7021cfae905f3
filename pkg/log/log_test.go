package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestNamedLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	l := ForService("search")
	l.Infof("merged %d results", 7)

	out := buf.String()
	if !strings.Contains(out, "INFO [search>] merged 7 results") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	l := ForService("cache")
	l.Debugf("should not appear")
	if strings.Contains(buf.String(), "should not appear") {
		t.Error("debug output should be suppressed by default")
	}

	EnableDebugFor("cache")
	l.Debugf("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("debug output should appear after EnableDebugFor")
	}
}

func TestForServiceMemoizes(t *testing.T) {
	if ForService("api") != ForService("api") {
		t.Error("expected the same logger instance for the same name")
	}
}
