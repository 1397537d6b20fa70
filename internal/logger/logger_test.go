package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNew_EmitsRoleAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "client")

	l.Info().Str("component", "session").Msg("logged in")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["role"] != "client" {
		t.Fatalf("role = %v, want client", entry["role"])
	}
	if entry["message"] != "logged in" {
		t.Fatalf("message = %v, want 'logged in'", entry["message"])
	}
	if entry["component"] != "session" {
		t.Fatalf("component = %v, want session", entry["component"])
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	l.Error().Msg("should vanish")
	// Nothing to assert beyond "does not panic"; Nop routes to io.Discard.
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "client")
	child := parent.GetChildLogger()

	child.Info().Msg("from child")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["role"] != "client" {
		t.Fatalf("child logger lost role field: %v", entry)
	}
}
