package solver

import (
	"github.com/pkg/errors"

	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/process"
	"github.com/rfielding/modalmu/transformer"
)

// Edge is a transition of the dependency graph.
type Edge struct {
	Step process.Step
	// To is the node the step leads to; for a call it is where the rule
	// continues after the callee exits.
	To int
	// Callee is the entry node of the called process, or -1.
	Callee int
	// T is the edge transformer of an action step: for every Box and
	// Diamond subformula it says what the step contributes, every other
	// component is the identity. Call edges have none; their transformer
	// is the callee's current assignment.
	T transformer.Transformer
}

// Node is one state of the expanded process system. Component i of its
// assignment is the obligation (state, subformula i).
type Node struct {
	ID    int
	State process.State
	Edges []Edge
}

// Exit reports whether the node is a process exit, whose assignment is
// the identity.
func (n *Node) Exit() bool {
	return n.State.Kind == process.Exit
}

// CallOnly reports whether the node is a rule position whose only step is a
// call; all its components then come from the callee.
func (n *Node) CallOnly() bool {
	return n.State.Kind == process.Position && len(n.Edges) == 1 && n.Edges[0].Step.IsCall()
}

// Graph is the dependency graph of a formula over a process system.
type Graph struct {
	Nodes   []*Node
	Index   *formula.Index
	Initial int
	// Dependents lists, per node, the nodes whose assignment reads it.
	Dependents [][]int

	entries map[string]int
	m       *transformer.Manager
}

// Build creates one dependency node per state of g and the edge
// transformers of every action step. m must have one input per subformula
// of idx.
func Build(m *transformer.Manager, g *process.Graph, idx *formula.Index) (*Graph, error) {
	if m.Dim() != idx.Len() {
		return nil, errors.Errorf("manager has dimension %d, formula has %d subformulas", m.Dim(), idx.Len())
	}
	dg := &Graph{
		Nodes:      make([]*Node, g.Len()),
		Index:      idx,
		Initial:    g.Initial,
		Dependents: make([][]int, g.Len()),
		entries:    g.Entry,
		m:          m,
	}
	edgeCache := make(map[process.Step]transformer.Transformer)

	for _, s := range g.States {
		if dg.Nodes[s.ID] != nil {
			return nil, &InternalError{Node: s.Name(), Var: -1, Reason: "duplicate node id"}
		}
		n := &Node{ID: s.ID, State: s}
		for _, e := range g.Out[s.ID] {
			edge := Edge{Step: e.Step, To: e.To, Callee: -1}
			if e.Step.IsCall() {
				entry, ok := g.Entry[e.Step.Call]
				if !ok {
					return nil, &process.SystemError{Process: s.Process, Rule: s.Rule, Step: s.Pos + 1, Reason: "call to unexpanded process " + e.Step.Call}
				}
				edge.Callee = entry
			} else {
				t, ok := edgeCache[e.Step]
				if !ok {
					t = actionTransformer(m, idx, e.Step)
					edgeCache[e.Step] = t
				}
				edge.T = t
			}
			n.Edges = append(n.Edges, edge)
		}
		dg.Nodes[s.ID] = n
	}

	for _, n := range dg.Nodes {
		for _, e := range n.Edges {
			dg.Dependents[e.To] = appendUnique(dg.Dependents[e.To], n.ID)
			if e.Callee >= 0 {
				dg.Dependents[e.Callee] = appendUnique(dg.Dependents[e.Callee], n.ID)
			}
		}
	}
	return dg, nil
}

// actionTransformer builds the edge transformer of an action step.
func actionTransformer(m *transformer.Manager, idx *formula.Index, step process.Step) transformer.Transformer {
	t := m.Identity()
	for _, s := range idx.Subformulas {
		switch f := s.Node.(type) {
		case *formula.Box:
			if step.Matches(f.Action) && step.Kind == process.Must {
				t = t.With(s.Var, m.Input(s.Left))
			} else {
				t = t.With(s.Var, m.Const(true))
			}
		case *formula.Diamond:
			if step.Matches(f.Action) {
				t = t.With(s.Var, m.Input(s.Left))
			} else {
				t = t.With(s.Var, m.Const(false))
			}
		}
	}
	return t
}

// ObligationID is the dense id of the obligation (node v, subformula i).
func (g *Graph) ObligationID(v, i int) int {
	return v*g.Index.Len() + i
}

// Obligation splits an obligation id into its node and subformula.
func (g *Graph) Obligation(id int) (v, i int) {
	return id / g.Index.Len(), id % g.Index.Len()
}

// Entry returns the entry node of process p.
func (g *Graph) Entry(p string) (int, bool) {
	v, ok := g.entries[p]
	return v, ok
}

// Manager returns the decision diagram manager the graph was built with.
func (g *Graph) Manager() *transformer.Manager {
	return g.m
}

func appendUnique(xs []int, x int) []int {
	for _, y := range xs {
		if y == x {
			return xs
		}
	}
	return append(xs, x)
}
