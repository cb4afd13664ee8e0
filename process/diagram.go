package process

import (
	"fmt"
	"io"
	"strings"
)

// DiagramOption configures diagram generation
type DiagramOption func(*diagramOptions)

type diagramOptions struct {
	stateDescriber func(State) string
	edgeLabeler    func(Edge) string
}

// WithStateDescriber sets a custom state description function
func WithStateDescriber(f func(State) string) DiagramOption {
	return func(opts *diagramOptions) {
		opts.stateDescriber = f
	}
}

// WithEdgeLabeler sets a custom edge label function
func WithEdgeLabeler(f func(Edge) string) DiagramOption {
	return func(opts *diagramOptions) {
		opts.edgeLabeler = f
	}
}

func newDiagramOptions(options []DiagramOption) *diagramOptions {
	opts := &diagramOptions{
		stateDescriber: describeState,
		edgeLabeler:    labelEdge,
	}
	for _, opt := range options {
		opt(opts)
	}
	return opts
}

func describeState(s State) string {
	if len(s.Props) == 0 {
		return s.Name()
	}
	return fmt.Sprintf("%s {%s}", s.Name(), strings.Join(s.Props, ", "))
}

func labelEdge(e Edge) string {
	if e.Step.IsCall() {
		return "call " + e.Step.Call
	}
	return fmt.Sprintf("%s (%s)", e.Step.Action, e.Step.Kind)
}

// WriteMermaid writes a Mermaid stateDiagram-v2 representation of the graph
// to w.
func (g *Graph) WriteMermaid(w io.Writer, options ...DiagramOption) error {
	opts := newDiagramOptions(options)

	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString(fmt.Sprintf("    [*] --> s%d\n", g.Initial))
	for _, s := range g.States {
		if desc := opts.stateDescriber(s); desc != "" {
			sb.WriteString(fmt.Sprintf("    s%d: %s\n", s.ID, desc))
		}
	}
	sb.WriteString("\n")
	for _, edges := range g.Out {
		for _, e := range edges {
			if label := opts.edgeLabeler(e); label != "" {
				sb.WriteString(fmt.Sprintf("    s%d --> s%d: %s\n", e.From, e.To, label))
			} else {
				sb.WriteString(fmt.Sprintf("    s%d --> s%d\n", e.From, e.To))
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteDOT writes a Graphviz DOT representation of the graph to w. Call
// edges are dashed, may steps dotted.
func (g *Graph) WriteDOT(w io.Writer, options ...DiagramOption) error {
	opts := newDiagramOptions(options)

	var sb strings.Builder
	sb.WriteString("digraph ProcessSystem {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("\n")

	// Add invisible start node pointing to initial state
	sb.WriteString("  start [shape=point];\n")
	sb.WriteString(fmt.Sprintf("  start -> \"%s\" [label=\"start\"];\n", g.States[g.Initial].Name()))
	sb.WriteString("\n")

	for _, s := range g.States {
		shape := "circle"
		switch s.Kind {
		case Entry:
			shape = "doublecircle"
		case Exit:
			shape = "box"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\" [shape=%s,label=\"%s\"];\n",
			s.Name(), shape, escapeDOT(opts.stateDescriber(s))))
	}
	sb.WriteString("\n")

	for _, edges := range g.Out {
		for _, e := range edges {
			style := "solid"
			switch {
			case e.Step.IsCall():
				style = "dashed"
			case e.Step.Kind == May:
				style = "dotted"
			}
			sb.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%s\",style=%s];\n",
				g.States[e.From].Name(), g.States[e.To].Name(), escapeDOT(opts.edgeLabeler(e)), style))
		}
	}

	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeDOT(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
