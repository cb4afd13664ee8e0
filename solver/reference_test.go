package solver

import (
	"fmt"
	"strings"

	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/process"
)

// reference evaluates formulas directly on configurations of an expanded
// system: a configuration is the current state followed by the states to
// return to. It explores configurations depth first and is only finite for
// systems whose calls do not recurse.
type reference struct {
	g *process.Graph
}

type conf []int

func (c conf) key() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ".")
}

// normalize pops finished processes off the top.
func (r reference) normalize(c conf) conf {
	for len(c) > 0 && r.g.States[c[0]].Kind == process.Exit {
		c = c[1:]
	}
	return c
}

func push(c conf, vs ...int) conf {
	out := make(conf, 0, len(c)+len(vs))
	out = append(out, vs...)
	return append(out, c...)
}

type frame struct {
	binder   formula.Formula
	greatest bool
	env      map[string]frame
}

func (r reference) holds(f formula.Formula, initial string) bool {
	return r.eval(f, conf{r.g.Entry[initial]}, map[string]frame{}, map[string]bool{})
}

func (r reference) eval(f formula.Formula, c conf, env map[string]frame, path map[string]bool) bool {
	c = r.normalize(c)
	var top process.State
	var edges []process.Edge
	if len(c) > 0 {
		top = r.g.States[c[0]]
		edges = r.g.Out[c[0]]
	}
	// A position whose only step is a call behaves like the callee.
	if len(c) > 0 && top.Kind == process.Position && len(edges) == 1 && edges[0].Step.IsCall() {
		e := edges[0]
		return r.eval(f, push(c[1:], r.g.Entry[e.Step.Call], e.To), env, path)
	}

	switch x := f.(type) {
	case *formula.True:
		return true
	case *formula.False:
		return false
	case *formula.Atomic:
		return len(c) > 0 && top.HasProp(x.Prop)
	case *formula.Not:
		return !r.eval(x.F, c, env, path)
	case *formula.And:
		return r.eval(x.Left, c, env, path) && r.eval(x.Right, c, env, path)
	case *formula.Or:
		return r.eval(x.Left, c, env, path) || r.eval(x.Right, c, env, path)
	case *formula.Box:
		for _, e := range edges {
			if e.Step.IsCall() {
				if !r.eval(f, push(c[1:], r.g.Entry[e.Step.Call], e.To), env, path) {
					return false
				}
			} else if e.Step.Matches(x.Action) && e.Step.Kind == process.Must {
				if !r.eval(x.F, push(c[1:], e.To), env, path) {
					return false
				}
			}
		}
		return true
	case *formula.Diamond:
		for _, e := range edges {
			if e.Step.IsCall() {
				if r.eval(f, push(c[1:], r.g.Entry[e.Step.Call], e.To), env, path) {
					return true
				}
			} else if e.Step.Matches(x.Action) {
				if r.eval(x.F, push(c[1:], e.To), env, path) {
					return true
				}
			}
		}
		return false
	case *formula.Lfp:
		return r.bind(x.Var, f, x.F, false, c, env, path)
	case *formula.Gfp:
		return r.bind(x.Var, f, x.F, true, c, env, path)
	case *formula.Variable:
		fr := env[x.Name]
		key := fmt.Sprintf("%p@%s", fr.binder, c.key())
		if path[key] {
			return fr.greatest
		}
		path[key] = true
		defer delete(path, key)
		var body formula.Formula
		switch b := fr.binder.(type) {
		case *formula.Lfp:
			body = b.F
		case *formula.Gfp:
			body = b.F
		}
		return r.eval(body, c, fr.env, path)
	default:
		panic(fmt.Sprintf("unknown node %T", f))
	}
}

func (r reference) bind(name string, binder, body formula.Formula, greatest bool, c conf, env map[string]frame, path map[string]bool) bool {
	inner := make(map[string]frame, len(env)+1)
	for k, v := range env {
		inner[k] = v
	}
	inner[name] = frame{binder: binder, greatest: greatest, env: inner}
	key := fmt.Sprintf("%p@%s", binder, c.key())
	path[key] = true
	defer delete(path, key)
	return r.eval(body, c, inner, path)
}
