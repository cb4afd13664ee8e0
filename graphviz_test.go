package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDotCommand(t *testing.T) {
	dot, err := run(t, "dot", "stack")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(dot, "digraph ProcessSystem") {
		t.Error("Expected digraph declaration")
	}

	if !strings.Contains(dot, `start -> "Main"`) {
		t.Error("Expected start node pointing at Main")
	}

	if !strings.Contains(dot, `"Main" [shape=doublecircle,label="Main {idle}"]`) {
		t.Error("Expected labelled entry state")
	}

	if !strings.Contains(dot, `"Main.exit" [shape=box`) {
		t.Error("Expected exit state")
	}

	if !strings.Contains(dot, `"Main" -> "Main.r0.1" [label="push (must)",style=solid]`) {
		t.Error("Expected push transition")
	}

	if !strings.Contains(dot, `[label="call Main",style=dashed]`) {
		t.Error("Expected call edge")
	}
}

func TestMermaidCommand(t *testing.T) {
	out, err := run(t, "mermaid", "--fence", "orders")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(out, "```mermaid\nstateDiagram-v2\n") {
		t.Errorf("Expected fenced state diagram, got %q", out[:40])
	}

	for _, state := range []string{"Order {new}", "Review {review}", "Deliver {accepted}", "Delivered {delivered}", "Cancelled {cancelled}"} {
		if !strings.Contains(out, state) {
			t.Errorf("Expected state %s in visualization", state)
		}
	}

	if !strings.Contains(out, "cancel (may)") {
		t.Error("Expected may step label")
	}
}

func TestDiagramUnknownModel(t *testing.T) {
	if _, err := run(t, "dot", "testdata/nope.yaml"); err == nil {
		t.Error("Expected an error for a missing model file")
	}
	if _, err := run(t, "mermaid"); err == nil {
		t.Error("Expected an error without a model argument")
	}
}
