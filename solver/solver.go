// Package solver checks alternation-free modal mu-calculus formulas against
// modal context-free process systems.
//
// Every state of the expanded system gets a transformer: component i maps
// the truth of the subformulas at the state's continuation to the truth of
// subformula i at the state. The transformers are the solution of one
// equation system per fixpoint block, solved innermost block first with a
// worklist.
package solver

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/transformer"
)

// Stats summarizes the work done by one solve.
type Stats struct {
	Blocks      int
	Evaluations int
	Updates     int
}

type worklist struct {
	queue  []int
	queued []bool
}

func newWorklist(n int) *worklist {
	return &worklist{queued: make([]bool, n)}
}

func (w *worklist) push(v int) {
	if w.queued[v] {
		return
	}
	w.queued[v] = true
	w.queue = append(w.queue, v)
}

func (w *worklist) pop() (int, bool) {
	if len(w.queue) == 0 {
		return 0, false
	}
	v := w.queue[0]
	w.queue = w.queue[1:]
	w.queued[v] = false
	return v, true
}

type solver struct {
	g      *Graph
	m      *transformer.Manager
	assign []transformer.Transformer
	cfg    *config
	log    logrus.FieldLogger
	stats  Stats
}

// Solve computes the assignment of every node of g.
func Solve(g *Graph, options ...Option) (*Result, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	s := &solver{
		g:      g,
		m:      g.m,
		assign: make([]transformer.Transformer, len(g.Nodes)),
		cfg:    cfg,
		log:    cfg.log,
	}
	if err := s.solve(); err != nil {
		return nil, err
	}
	return newResult(g, s.assign, s.stats), nil
}

func (s *solver) solve() error {
	for v, n := range s.g.Nodes {
		if n.Exit() {
			s.assign[v] = s.m.Identity()
		} else {
			s.assign[v] = s.m.Bottom()
		}
	}
	blocks := s.g.Index.Blocks
	for b := len(blocks) - 1; b >= 0; b-- {
		if err := s.block(blocks[b]); err != nil {
			return err
		}
	}
	return nil
}

// block solves the equations of one block, treating every other block as
// fixed.
func (s *solver) block(b formula.Block) error {
	if len(b.Vars) == 0 {
		return nil
	}
	seed := s.m.Const(b.Kind == formula.GreatestFixpoint)
	w := newWorklist(len(s.g.Nodes))
	for _, n := range s.g.Nodes {
		if n.Exit() {
			continue
		}
		c := s.assign[n.ID].Components()
		for _, i := range b.Vars {
			c[i] = seed
		}
		t, err := s.m.Build(c)
		if err != nil {
			return err
		}
		s.assign[n.ID] = t
		w.push(n.ID)
	}

	var evaluations, updates int
	for {
		v, ok := w.pop()
		if !ok {
			break
		}
		n := s.g.Nodes[v]
		evaluations++
		s.cfg.metrics.evaluation()
		next, err := s.recompute(n, b)
		if err != nil {
			return err
		}
		if s.m.Equal(next, s.assign[v]) {
			continue
		}
		if err := s.check(n, b, s.assign[v], next); err != nil {
			return err
		}
		s.assign[v] = next
		updates++
		s.cfg.metrics.update()
		for _, d := range s.g.Dependents[v] {
			if !s.g.Nodes[d].Exit() {
				w.push(d)
			}
		}
	}
	if err := s.m.Err(); err != nil {
		return errors.Wrapf(err, "solving block %d", b.Number)
	}

	s.stats.Blocks++
	s.stats.Evaluations += evaluations
	s.stats.Updates += updates
	s.cfg.metrics.block(b.Kind.String())
	s.log.WithFields(logrus.Fields{
		"block":       b.Number,
		"kind":        b.Kind,
		"vars":        len(b.Vars),
		"evaluations": evaluations,
		"updates":     updates,
	}).Debug("block converged")
	return nil
}

// recompute evaluates the equations of block b at node n. Components are
// computed in variable order, so children are always fresh; the pass is
// repeated until the node is locally stable because a fixpoint variable
// reads its binder, which comes later.
func (s *solver) recompute(n *Node, b formula.Block) (transformer.Transformer, error) {
	c := s.assign[n.ID].Components()
	for {
		changed := false
		for _, i := range b.Vars {
			f, err := s.component(n, i, c)
			if err != nil {
				return transformer.Transformer{}, err
			}
			if !s.m.Same(f, c[i]) {
				c[i] = f
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return s.m.Build(c)
}

func (s *solver) component(n *Node, i int, c []transformer.Func) (transformer.Func, error) {
	sub := s.g.Index.At(i)
	if n.CallOnly() {
		e := n.Edges[0]
		return s.m.Substitute(s.assign[e.Callee].At(i), s.assign[e.To]), nil
	}
	switch f := sub.Node.(type) {
	case *formula.True:
		return s.m.Const(true), nil
	case *formula.False:
		return s.m.Const(false), nil
	case *formula.Atomic:
		return s.m.Const(n.State.HasProp(f.Prop)), nil
	case *formula.Not:
		a, ok := f.F.(*formula.Atomic)
		if !ok {
			return transformer.Func{}, &InternalError{Node: n.State.Name(), Var: i, Reason: "negation of a non-atomic subformula"}
		}
		return s.m.Const(!n.State.HasProp(a.Prop)), nil
	case *formula.And:
		return s.m.And(c[sub.Left], c[sub.Right]), nil
	case *formula.Or:
		return s.m.Or(c[sub.Left], c[sub.Right]), nil
	case *formula.Lfp, *formula.Gfp:
		return c[sub.Left], nil
	case *formula.Variable:
		return c[sub.Binder], nil
	case *formula.Box:
		return s.m.And(s.contributions(n, i)...), nil
	case *formula.Diamond:
		return s.m.Or(s.contributions(n, i)...), nil
	default:
		panic(fmt.Sprintf("solver: unknown formula node %T", sub.Node))
	}
}

// contributions returns, for every edge of n, component i of the edge
// transformer composed with the assignment of the edge's target.
func (s *solver) contributions(n *Node, i int) []transformer.Func {
	out := make([]transformer.Func, 0, len(n.Edges))
	for _, e := range n.Edges {
		t := e.T
		if e.Callee >= 0 {
			t = s.assign[e.Callee]
		}
		out = append(out, s.m.Substitute(t.At(i), s.assign[e.To]))
	}
	return out
}

// check verifies that an update moves in the direction of the block's
// fixpoint: up for least fixpoints, down for greatest ones.
func (s *solver) check(n *Node, b formula.Block, old, next transformer.Transformer) error {
	lo, hi := old, next
	if b.Kind == formula.GreatestFixpoint {
		lo, hi = next, old
	}
	if !s.m.Leq(lo, hi) {
		for i := 0; i < lo.Len(); i++ {
			if !s.m.Implies(lo.At(i), hi.At(i)) {
				return &InternalError{Node: n.State.Name(), Var: i, Reason: fmt.Sprintf("assignment moved against the %s fixpoint", b.Kind)}
			}
		}
	}
	if s.cfg.checkInvariants && !s.m.Monotone(next) {
		return &InternalError{Node: n.State.Name(), Var: -1, Reason: "non-monotone transformer"}
	}
	return nil
}
