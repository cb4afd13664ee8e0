package formula

import "fmt"

// Formula is a modal mu-calculus formula.
//
// The set of variants is closed: True, False, Atomic, Not, And, Or, Box,
// Diamond, Lfp, Gfp and Variable. Children are owned by their parent; a tree
// never shares a node between two positions.
type Formula interface {
	fmt.Stringer
	isFormula()
}

// True is the constant true.
type True struct{}

// False is the constant false.
type False struct{}

// Atomic is an atomic proposition.
type Atomic struct {
	Prop string
}

// Not: ¬φ
type Not struct {
	F Formula
}

// And: (φ ∧ ψ)
type And struct {
	Left, Right Formula
}

// Or: (φ ∨ ψ)
type Or struct {
	Left, Right Formula
}

// Box: [a]φ. An empty Action matches every action.
type Box struct {
	Action string
	F      Formula
}

// Diamond: <a>φ. An empty Action matches every action.
type Diamond struct {
	Action string
	F      Formula
}

// Lfp binds Var as a least fixpoint: mu X.φ
type Lfp struct {
	Var string
	F   Formula
}

// Gfp binds Var as a greatest fixpoint: nu X.φ
type Gfp struct {
	Var string
	F   Formula
}

// Variable is a reference to the fixpoint variable bound by an enclosing Lfp or Gfp.
type Variable struct {
	Name string
}

func (*True) isFormula()     {}
func (*False) isFormula()    {}
func (*Atomic) isFormula()   {}
func (*Not) isFormula()      {}
func (*And) isFormula()      {}
func (*Or) isFormula()       {}
func (*Box) isFormula()      {}
func (*Diamond) isFormula()  {}
func (*Lfp) isFormula()      {}
func (*Gfp) isFormula()      {}
func (*Variable) isFormula() {}

func (*True) String() string      { return "true" }
func (*False) String() string     { return "false" }
func (a *Atomic) String() string  { return fmt.Sprintf("%q", a.Prop) }
func (n *Not) String() string     { return "!" + n.F.String() }
func (a *And) String() string     { return fmt.Sprintf("(%s && %s)", a.Left, a.Right) }
func (o *Or) String() string      { return fmt.Sprintf("(%s || %s)", o.Left, o.Right) }
func (b *Box) String() string     { return fmt.Sprintf("[%s]%s", b.Action, b.F) }
func (d *Diamond) String() string { return fmt.Sprintf("<%s>%s", d.Action, d.F) }
func (l *Lfp) String() string     { return fmt.Sprintf("(mu %s.(%s))", l.Var, l.F) }
func (g *Gfp) String() string     { return fmt.Sprintf("(nu %s.(%s))", g.Var, g.F) }
func (v *Variable) String() string { return v.Name }

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Formula) bool {
	switch x := a.(type) {
	case *True:
		_, ok := b.(*True)
		return ok
	case *False:
		_, ok := b.(*False)
		return ok
	case *Atomic:
		y, ok := b.(*Atomic)
		return ok && x.Prop == y.Prop
	case *Not:
		y, ok := b.(*Not)
		return ok && Equal(x.F, y.F)
	case *And:
		y, ok := b.(*And)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Or:
		y, ok := b.(*Or)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Box:
		y, ok := b.(*Box)
		return ok && x.Action == y.Action && Equal(x.F, y.F)
	case *Diamond:
		y, ok := b.(*Diamond)
		return ok && x.Action == y.Action && Equal(x.F, y.F)
	case *Lfp:
		y, ok := b.(*Lfp)
		return ok && x.Var == y.Var && Equal(x.F, y.F)
	case *Gfp:
		y, ok := b.(*Gfp)
		return ok && x.Var == y.Var && Equal(x.F, y.F)
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	default:
		panic(fmt.Sprintf("formula: unknown node type %T", a))
	}
}

// Size returns the number of nodes in f.
func Size(f Formula) int {
	n := 0
	Walk(f, func(Formula) { n++ })
	return n
}

// Walk calls fn for every node of f in pre-order.
func Walk(f Formula, fn func(Formula)) {
	fn(f)
	switch x := f.(type) {
	case *True, *False, *Atomic, *Variable:
	case *Not:
		Walk(x.F, fn)
	case *And:
		Walk(x.Left, fn)
		Walk(x.Right, fn)
	case *Or:
		Walk(x.Left, fn)
		Walk(x.Right, fn)
	case *Box:
		Walk(x.F, fn)
	case *Diamond:
		Walk(x.F, fn)
	case *Lfp:
		Walk(x.F, fn)
	case *Gfp:
		Walk(x.F, fn)
	default:
		panic(fmt.Sprintf("formula: unknown node type %T", f))
	}
}
