package formula

import (
	"fmt"
	"sort"
)

// BlockKind tells which fixpoint a subformula's equational block computes.
type BlockKind int

const (
	// NoFixpoint marks the block of subformulas outside every binder.
	NoFixpoint BlockKind = iota
	GreatestFixpoint
	LeastFixpoint
)

func (k BlockKind) String() string {
	switch k {
	case GreatestFixpoint:
		return "nu"
	case LeastFixpoint:
		return "mu"
	default:
		return "none"
	}
}

// Subformula is one numbered node of an Index.
type Subformula struct {
	Node Formula
	// Var is the dense variable number of the node.
	Var int
	// Block is the equational block the node belongs to.
	Block int
	// Kind is the kind of Block; for binders and variables it is the kind of
	// the binder itself.
	Kind BlockKind
	// Left and Right are the variable numbers of the children, or -1.
	Left, Right int
	// Binder is the variable number of the binder a Variable refers to, or -1.
	Binder int
}

// MaxBlock reports whether the subformula belongs to a greatest fixpoint
// block. ok is false outside of any fixpoint.
func (s Subformula) MaxBlock() (max bool, ok bool) {
	switch s.Kind {
	case GreatestFixpoint:
		return true, true
	case LeastFixpoint:
		return false, true
	default:
		return false, false
	}
}

// Block groups the subformulas that are solved together. A block always has
// a larger number than the block enclosing it.
type Block struct {
	Number int
	Kind   BlockKind
	Parent int
	Vars   []int
}

// Index is the numbered form of a closed formula in negation normal form.
// It is immutable once returned by Number.
type Index struct {
	Subformulas []Subformula
	Blocks      []Block
	Root        int
}

// Len returns the number of subformulas, which is also the dimension of
// every transformer built for this formula.
func (x *Index) Len() int {
	return len(x.Subformulas)
}

// At returns the subformula with variable number v.
func (x *Index) At(v int) Subformula {
	return x.Subformulas[v]
}

// Order returns the decision diagram level of every variable: subformulas
// of inner blocks come first, ties broken by variable number.
func (x *Index) Order() []int {
	vars := make([]int, len(x.Subformulas))
	for i := range vars {
		vars[i] = i
	}
	sort.SliceStable(vars, func(i, j int) bool {
		a, b := x.Subformulas[vars[i]], x.Subformulas[vars[j]]
		if a.Block != b.Block {
			return a.Block > b.Block
		}
		return a.Var < b.Var
	})
	levels := make([]int, len(vars))
	for level, v := range vars {
		levels[v] = level
	}
	return levels
}

// Number assigns variable and block numbers to every node of f, which must
// be in negation normal form (see NNF). Variables are numbered in
// post-order, so children always have smaller numbers than their parent.
//
// Number fails with a *StructuralError if f is open, negates a fixpoint
// variable, is not in negation normal form, or has alternating fixpoints.
func Number(f Formula) (*Index, error) {
	n := numberer{
		idx: &Index{Blocks: []Block{{Number: 0, Kind: NoFixpoint, Parent: -1}}},
	}
	root, err := n.visit(f, 0)
	if err != nil {
		return nil, err
	}
	n.idx.Root = root
	return n.idx, nil
}

type scope struct {
	name  string
	block int
	refs  []int
}

type numberer struct {
	idx    *Index
	scopes []*scope
}

func (n *numberer) add(node Formula, block int, kind BlockKind, left, right int) int {
	v := len(n.idx.Subformulas)
	n.idx.Subformulas = append(n.idx.Subformulas, Subformula{
		Node:   node,
		Var:    v,
		Block:  block,
		Kind:   kind,
		Left:   left,
		Right:  right,
		Binder: -1,
	})
	n.idx.Blocks[block].Vars = append(n.idx.Blocks[block].Vars, v)
	return v
}

func (n *numberer) lookup(name string) *scope {
	for i := len(n.scopes) - 1; i >= 0; i-- {
		if n.scopes[i].name == name {
			return n.scopes[i]
		}
	}
	return nil
}

func (n *numberer) visit(f Formula, block int) (int, error) {
	kind := n.idx.Blocks[block].Kind
	switch x := f.(type) {
	case *True, *False, *Atomic:
		return n.add(f, block, kind, -1, -1), nil
	case *Not:
		switch c := x.F.(type) {
		case *Atomic:
			l := n.add(c, block, kind, -1, -1)
			return n.add(f, block, kind, l, -1), nil
		case *Variable:
			if n.lookup(c.Name) == nil {
				return 0, structural(f, "variable %s is not bound", c.Name)
			}
			return 0, structural(f, "fixpoint variable %s occurs negated", c.Name)
		default:
			return 0, structural(f, "negation of a non-atomic formula; normalize first")
		}
	case *And:
		return n.binary(f, x.Left, x.Right, block)
	case *Or:
		return n.binary(f, x.Left, x.Right, block)
	case *Box:
		return n.unary(f, x.F, block)
	case *Diamond:
		return n.unary(f, x.F, block)
	case *Lfp:
		return n.binder(f, x.Var, x.F, block, LeastFixpoint)
	case *Gfp:
		return n.binder(f, x.Var, x.F, block, GreatestFixpoint)
	case *Variable:
		s := n.lookup(x.Name)
		if s == nil {
			return 0, structural(f, "variable %s is not bound", x.Name)
		}
		if s.block != block {
			return 0, structural(f, "variable %s is used inside a fixpoint of another kind (alternating fixpoints are not supported)", x.Name)
		}
		v := n.add(f, block, kind, -1, -1)
		s.refs = append(s.refs, v)
		return v, nil
	default:
		panic(fmt.Sprintf("formula: unknown node type %T", f))
	}
}

func (n *numberer) unary(f, child Formula, block int) (int, error) {
	l, err := n.visit(child, block)
	if err != nil {
		return 0, err
	}
	return n.add(f, block, n.idx.Blocks[block].Kind, l, -1), nil
}

func (n *numberer) binary(f, left, right Formula, block int) (int, error) {
	l, err := n.visit(left, block)
	if err != nil {
		return 0, err
	}
	r, err := n.visit(right, block)
	if err != nil {
		return 0, err
	}
	return n.add(f, block, n.idx.Blocks[block].Kind, l, r), nil
}

func (n *numberer) binder(f Formula, name string, body Formula, block int, kind BlockKind) (int, error) {
	inner := block
	if n.idx.Blocks[block].Kind != kind {
		inner = len(n.idx.Blocks)
		n.idx.Blocks = append(n.idx.Blocks, Block{Number: inner, Kind: kind, Parent: block})
	}
	s := &scope{name: name, block: inner}
	n.scopes = append(n.scopes, s)
	l, err := n.visit(body, inner)
	n.scopes = n.scopes[:len(n.scopes)-1]
	if err != nil {
		return 0, err
	}
	v := n.add(f, inner, kind, l, -1)
	for _, ref := range s.refs {
		n.idx.Subformulas[ref].Binder = v
	}
	return v, nil
}
