package solver

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/transformer"
)

// Result holds the converged assignment of every node.
type Result struct {
	Graph *Graph
	Stats Stats

	assign   []transformer.Transformer
	terminal []bool
}

func newResult(g *Graph, assign []transformer.Transformer, stats Stats) *Result {
	return &Result{
		Graph:    g,
		Stats:    stats,
		assign:   assign,
		terminal: Terminal(g.Index),
	}
}

// Terminal returns the truth of every subformula at a terminated process:
// a state without propositions and without transitions. Boxes hold there,
// diamonds do not, and each fixpoint takes its own extreme value.
func Terminal(idx *formula.Index) []bool {
	val := make([]bool, idx.Len())
	for b := len(idx.Blocks) - 1; b >= 0; b-- {
		block := idx.Blocks[b]
		for _, i := range block.Vars {
			val[i] = block.Kind == formula.GreatestFixpoint
		}
		for changed := true; changed; {
			changed = false
			for _, i := range block.Vars {
				sub := idx.At(i)
				var v bool
				switch sub.Node.(type) {
				case *formula.True, *formula.Not, *formula.Box:
					v = true
				case *formula.False, *formula.Atomic, *formula.Diamond:
					v = false
				case *formula.And:
					v = val[sub.Left] && val[sub.Right]
				case *formula.Or:
					v = val[sub.Left] || val[sub.Right]
				case *formula.Lfp, *formula.Gfp:
					v = val[sub.Left]
				case *formula.Variable:
					v = val[sub.Binder]
				default:
					panic(fmt.Sprintf("solver: unknown formula node %T", sub.Node))
				}
				if v != val[i] {
					val[i] = v
					changed = true
				}
			}
		}
	}
	return val
}

func (r *Result) entry(p string) (int, error) {
	v, ok := r.Graph.Entry(p)
	if !ok {
		return 0, errors.Errorf("process %s is not reachable from the initial process", p)
	}
	return v, nil
}

// Holds reports whether the formula holds for process p when p is run as the
// whole program.
func (r *Result) Holds(p string) (bool, error) {
	return r.HoldsUnder(p, r.terminal)
}

// HoldsUnder reports whether the formula holds for process p when it runs
// with a continuation that satisfies exactly the subformulas set in input.
func (r *Result) HoldsUnder(p string, input []bool) (bool, error) {
	v, err := r.entry(p)
	if err != nil {
		return false, err
	}
	if len(input) != r.Graph.Index.Len() {
		return false, errors.Errorf("input has %d entries, want %d", len(input), r.Graph.Index.Len())
	}
	return r.Graph.m.Eval(r.assign[v].At(r.Graph.Index.Root), input), nil
}

// Verdict reports whether the formula holds for the initial process.
func (r *Result) Verdict() bool {
	return r.Graph.m.Eval(r.assign[r.Graph.Initial].At(r.Graph.Index.Root), r.terminal)
}

// Satisfied lists the subformulas that hold for process p run as the whole
// program.
func (r *Result) Satisfied(p string) ([]formula.Formula, error) {
	v, err := r.entry(p)
	if err != nil {
		return nil, err
	}
	values := r.Graph.m.Apply(r.assign[v], r.terminal)
	var out []formula.Formula
	for i, ok := range values {
		if ok {
			out = append(out, r.Graph.Index.At(i).Node)
		}
	}
	return out, nil
}

// Assignment returns the transformer of node v.
func (r *Result) Assignment(v int) transformer.Transformer {
	return r.assign[v]
}

// Assignments returns the transformer of every state, keyed by state name.
func (r *Result) Assignments() map[string]transformer.Transformer {
	out := make(map[string]transformer.Transformer, len(r.assign))
	for v, n := range r.Graph.Nodes {
		out[n.State.Name()] = r.assign[v]
	}
	return out
}

// Obligation reports the truth of obligation id under a terminated
// continuation.
func (r *Result) Obligation(id int) bool {
	v, i := r.Graph.Obligation(id)
	return r.Graph.m.Eval(r.assign[v].At(i), r.terminal)
}
