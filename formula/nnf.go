package formula

import "fmt"

// NNF returns a formula equivalent to f in negation normal form: negation
// only occurs directly above atomic propositions and fixpoint variables.
// The result is a freshly allocated tree; f is left untouched.
func NNF(f Formula) Formula {
	n := normalizer{negated: make(map[string]bool)}
	return n.visit(f, false)
}

type normalizer struct {
	// negated holds the fixpoint variables whose binder was dualized on the
	// way down.
	negated map[string]bool
}

func (n *normalizer) visit(f Formula, negate bool) Formula {
	switch x := f.(type) {
	case *Gfp:
		body := n.binder(x.Var, x.F, negate)
		if negate {
			return &Lfp{Var: x.Var, F: body}
		}
		return &Gfp{Var: x.Var, F: body}
	case *Lfp:
		body := n.binder(x.Var, x.F, negate)
		if negate {
			return &Gfp{Var: x.Var, F: body}
		}
		return &Lfp{Var: x.Var, F: body}
	case *And:
		l, r := n.visit(x.Left, negate), n.visit(x.Right, negate)
		if negate {
			return &Or{Left: l, Right: r}
		}
		return &And{Left: l, Right: r}
	case *Or:
		l, r := n.visit(x.Left, negate), n.visit(x.Right, negate)
		if negate {
			return &And{Left: l, Right: r}
		}
		return &Or{Left: l, Right: r}
	case *Atomic:
		if negate {
			return &Not{F: &Atomic{Prop: x.Prop}}
		}
		return &Atomic{Prop: x.Prop}
	case *Box:
		if negate {
			return &Diamond{Action: x.Action, F: n.visit(x.F, true)}
		}
		return &Box{Action: x.Action, F: n.visit(x.F, false)}
	case *Diamond:
		if negate {
			return &Box{Action: x.Action, F: n.visit(x.F, true)}
		}
		return &Diamond{Action: x.Action, F: n.visit(x.F, false)}
	case *True:
		if negate {
			return &False{}
		}
		return &True{}
	case *False:
		if negate {
			return &True{}
		}
		return &False{}
	case *Variable:
		if negate != n.negated[x.Name] {
			return &Not{F: &Variable{Name: x.Name}}
		}
		return &Variable{Name: x.Name}
	case *Not:
		return n.visit(x.F, !negate)
	default:
		panic(fmt.Sprintf("formula: unknown node type %T", f))
	}
}

// binder rewrites the body of a fixpoint binding name. The variable's
// negation status is scoped to the body so that an inner binder of the same
// name shadows an outer one.
func (n *normalizer) binder(name string, body Formula, negate bool) Formula {
	prev, had := n.negated[name]
	n.negated[name] = negate
	out := n.visit(body, negate)
	if had {
		n.negated[name] = prev
	} else {
		delete(n.negated, name)
	}
	return out
}
