package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		logger.Info("hello", "key", "value")

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("Log line is not JSON: %v", err)
		}
		if record["msg"] != "hello" || record["key"] != "value" {
			t.Errorf("Unexpected record: %v", record)
		}
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		logger.Info("hello")
		if !strings.Contains(buf.String(), "msg=hello") {
			t.Errorf("Expected text format, got %q", buf.String())
		}
	})

	t.Run("level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "warn", Format: "json", Writer: &buf})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		logger.Info("dropped")
		if buf.Len() != 0 {
			t.Errorf("Expected info suppressed at warn level, got %q", buf.String())
		}

		logger.Warn("kept")
		if buf.Len() == 0 {
			t.Error("Expected warn emitted")
		}
	})

	t.Run("defaults apply for empty fields", func(t *testing.T) {
		logger, err := New(Config{})
		if err != nil {
			t.Fatalf("New with empty config failed: %v", err)
		}
		if logger == nil {
			t.Fatal("Expected logger")
		}
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		if _, err := New(Config{Level: "shouting"}); err == nil {
			t.Error("Expected error for invalid level")
		}
	})

	t.Run("invalid format rejected", func(t *testing.T) {
		if _, err := New(Config{Format: "xml"}); err == nil {
			t.Error("Expected error for invalid format")
		}
	})
}

func TestRequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := WithRequestID(context.Background(), "req-777")
	logger.InfoContext(ctx, "with id")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Log line is not JSON: %v", err)
	}
	if record["request_id"] != "req-777" {
		t.Errorf("Expected request_id stamped, got %v", record)
	}

	buf.Reset()
	logger.Info("without id")
	record = map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatal(err)
	}
	if _, ok := record["request_id"]; ok {
		t.Error("Expected no request_id without context value")
	}
}

func TestGetRequestID(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("Expected empty ID on bare context, got %q", got)
	}

	ctx := WithRequestID(context.Background(), "abc")
	if got := GetRequestID(ctx); got != "abc" {
		t.Errorf("Expected abc, got %q", got)
	}
}
