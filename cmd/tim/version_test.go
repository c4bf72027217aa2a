package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderVersionPrettyDisablesColorWhenRequested(t *testing.T) {
	var buf bytes.Buffer
	renderVersionPretty(&buf, false)
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escape codes when colored=false, got %q", out)
	}
	if !strings.Contains(out, "tim") {
		t.Fatalf("expected the tool name in output, got %q", out)
	}
}

func TestRenderVersionJSONProducesValidDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unexpected error unmarshaling: %v", err)
	}
	if payload.Tool != "tim" {
		t.Fatalf("expected tool %q, got %q", "tim", payload.Tool)
	}
	if payload.Version == "" {
		t.Fatalf("expected a non-empty version")
	}
}

func TestVersionCommandRejectsUnknownFormat(t *testing.T) {
	versionFormat = "xml"
	defer func() { versionFormat = "pretty" }()

	root := newTestRootWithIDE()
	root.AddCommand(versionCmd)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error for an unsupported version format")
	}
}
