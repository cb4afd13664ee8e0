package process

import (
	"strings"
	"testing"
)

func TestWriteDOT(t *testing.T) {
	g, err := Expand(stack())
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := g.WriteDOT(&sb); err != nil {
		t.Fatal(err)
	}
	dot := sb.String()

	if !strings.Contains(dot, "digraph ProcessSystem") {
		t.Error("Expected digraph declaration")
	}
	if !strings.Contains(dot, `start -> "Main"`) {
		t.Error("Expected start edge to the initial process")
	}
	if !strings.Contains(dot, `"Main" [shape=doublecircle,label="Main {idle}"]`) {
		t.Error("Expected entry state with its propositions")
	}
	if !strings.Contains(dot, `"Main.r0.1" -> "Main.r0.2" [label="call Main",style=dashed]`) {
		t.Error("Expected dashed call edge")
	}
	if !strings.Contains(dot, `"Main" -> "Main.exit" [label="stop (may)",style=dotted]`) {
		t.Error("Expected dotted may edge")
	}
}

func TestWriteMermaid(t *testing.T) {
	g, err := Expand(stack())
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	err = g.WriteMermaid(&sb, WithEdgeLabeler(func(e Edge) string {
		if e.Step.IsCall() {
			return ""
		}
		return e.Step.Action
	}))
	if err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	for _, want := range []string{
		"stateDiagram-v2",
		"[*] --> s0",
		"s0: Main {idle}",
		"s1: Main.exit",
		"s0 --> s2: a",
		"s2 --> s3\n",
		"s0 --> s1: stop",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in Mermaid output:\n%s", want, out)
		}
	}
}
