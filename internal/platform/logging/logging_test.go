package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ogurasousui/hr-records-api/internal/platform/config"
	"github.com/sirupsen/logrus"
)

func TestNewWithOutput_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithOutput(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("NewWithOutput returned error: %v", err)
	}

	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}

	logger.WithField("employee_id", 7).Info("employee created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "employee created" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["employee_id"] != float64(7) {
		t.Fatalf("unexpected employee_id: %v", entry["employee_id"])
	}
}

func TestNewWithOutput_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := NewWithOutput(config.LogConfig{Level: "loud", Format: "text"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewWithOutput_InvalidFormat(t *testing.T) {
	t.Parallel()

	if _, err := NewWithOutput(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid format")
	}
}
