// Package transformer implements monotone vector functions over booleans on
// top of a shared binary decision diagram.
//
// A Transformer of dimension n maps an input vector x in {0,1}^n to an output
// vector; component i is a Func, a boolean function of x represented as a
// BDD node. Input j is BDD variable Order[j], so callers control the variable
// order of the diagram.
package transformer

import (
	"github.com/dalzilio/rudd"
	"github.com/pkg/errors"
)

// Func is one boolean function of the input vector.
type Func struct {
	node rudd.Node
}

// Transformer is an immutable vector of Funcs.
type Transformer struct {
	c []Func
}

// Len returns the dimension of t.
func (t Transformer) Len() int {
	return len(t.c)
}

// At returns component i.
func (t Transformer) At(i int) Func {
	return t.c[i]
}

// Components returns a copy of the components of t.
func (t Transformer) Components() []Func {
	return append([]Func(nil), t.c...)
}

// With returns a copy of t with component i replaced by f.
func (t Transformer) With(i int, f Func) Transformer {
	c := make([]Func, len(t.c))
	copy(c, t.c)
	c[i] = f
	return Transformer{c: c}
}

// Manager owns the decision diagram shared by every Func and Transformer it
// builds. A Manager is not safe for concurrent use; independent solves need
// independent managers.
type Manager struct {
	bdd   *rudd.BDD
	n     int
	level []int // input -> BDD variable
	input []int // BDD variable -> input
	ones  rudd.Node
	zeros rudd.Node
}

type config struct {
	nodesize  int
	cachesize int
}

// Option configures a Manager.
type Option func(*config)

// NodeSize sets the initial number of nodes of the diagram.
func NodeSize(n int) Option {
	return func(c *config) { c.nodesize = n }
}

// CacheSize sets the initial size of the operation caches.
func CacheSize(n int) Option {
	return func(c *config) { c.cachesize = n }
}

// DefaultNodeSize and DefaultCacheSize are used when no option overrides them.
const (
	DefaultNodeSize  = 10000
	DefaultCacheSize = 5000
)

// New creates a manager for transformers of dimension n. order gives the BDD
// level of every input and must be a permutation of 0..n-1; nil means the
// identity order.
func New(n int, order []int, options ...Option) (*Manager, error) {
	cfg := config{nodesize: DefaultNodeSize, cachesize: DefaultCacheSize}
	for _, opt := range options {
		opt(&cfg)
	}
	if n <= 0 {
		return nil, errors.Errorf("transformer dimension must be positive, got %d", n)
	}
	if order == nil {
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
	}
	if len(order) != n {
		return nil, errors.Errorf("variable order has %d entries, want %d", len(order), n)
	}
	input := make([]int, n)
	seen := make([]bool, n)
	for j, l := range order {
		if l < 0 || l >= n || seen[l] {
			return nil, errors.Errorf("variable order is not a permutation: input %d at level %d", j, l)
		}
		seen[l] = true
		input[l] = j
	}

	bdd, err := rudd.New(n, rudd.Nodesize(cfg.nodesize), rudd.Cachesize(cfg.cachesize))
	if err != nil {
		return nil, errors.Wrap(err, "creating decision diagram")
	}
	return &Manager{
		bdd:   bdd,
		n:     n,
		level: append([]int(nil), order...),
		input: input,
		ones:  bdd.True(),
		zeros: bdd.False(),
	}, nil
}

// Dim returns the dimension of every transformer of m.
func (m *Manager) Dim() int {
	return m.n
}

// Err reports a failure recorded by the decision diagram, for instance when
// it ran out of nodes.
func (m *Manager) Err() error {
	if msg := m.bdd.Error(); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// Stats describes the state of the diagram.
func (m *Manager) Stats() string {
	return m.bdd.Stats()
}

// Const returns the constant function b.
func (m *Manager) Const(b bool) Func {
	if b {
		return Func{m.ones}
	}
	return Func{m.zeros}
}

// Input returns the projection on input j.
func (m *Manager) Input(j int) Func {
	return Func{m.bdd.Ithvar(m.level[j])}
}

// And returns the conjunction of fs; the empty conjunction is true.
func (m *Manager) And(fs ...Func) Func {
	out := m.ones
	for _, f := range fs {
		out = m.bdd.And(out, f.node)
	}
	return Func{out}
}

// Or returns the disjunction of fs; the empty disjunction is false.
func (m *Manager) Or(fs ...Func) Func {
	out := m.zeros
	for _, f := range fs {
		out = m.bdd.Or(out, f.node)
	}
	return Func{out}
}

// Same reports whether f and g are the same function.
func (m *Manager) Same(f, g Func) bool {
	return *f.node == *g.node
}

// IsConst reports whether f is constant, and its value if so.
func (m *Manager) IsConst(f Func) (value, ok bool) {
	switch *f.node {
	case *m.ones:
		return true, true
	case *m.zeros:
		return false, true
	default:
		return false, false
	}
}

// Implies reports whether f → g holds for every input.
func (m *Manager) Implies(f, g Func) bool {
	return *m.bdd.Or(m.bdd.Not(f.node), g.node) == *m.ones
}

// Eval evaluates f on input.
func (m *Manager) Eval(f Func, input []bool) bool {
	cube := m.ones
	for j, b := range input {
		if b {
			cube = m.bdd.And(cube, m.bdd.Ithvar(m.level[j]))
		} else {
			cube = m.bdd.And(cube, m.bdd.NIthvar(m.level[j]))
		}
	}
	return *m.bdd.And(f.node, cube) != *m.zeros
}

// Bottom returns the transformer whose components are all false.
func (m *Manager) Bottom() Transformer {
	return m.fill(m.Const(false))
}

// Top returns the transformer whose components are all true.
func (m *Manager) Top() Transformer {
	return m.fill(m.Const(true))
}

// Identity returns the transformer mapping every input to itself.
func (m *Manager) Identity() Transformer {
	c := make([]Func, m.n)
	for j := range c {
		c[j] = m.Input(j)
	}
	return Transformer{c: c}
}

func (m *Manager) fill(f Func) Transformer {
	c := make([]Func, m.n)
	for i := range c {
		c[i] = f
	}
	return Transformer{c: c}
}

// Build makes a transformer from its components.
func (m *Manager) Build(components []Func) (Transformer, error) {
	if len(components) != m.n {
		return Transformer{}, errors.Errorf("transformer needs %d components, got %d", m.n, len(components))
	}
	return Transformer{c: append([]Func(nil), components...)}, nil
}

// Apply evaluates every component of t on input.
func (m *Manager) Apply(t Transformer, input []bool) []bool {
	out := make([]bool, len(t.c))
	for i, f := range t.c {
		out[i] = m.Eval(f, input)
	}
	return out
}

// Equal reports whether a and b are the same transformer. Comparing two
// components is a pointer comparison in the diagram.
func (m *Manager) Equal(a, b Transformer) bool {
	if len(a.c) != len(b.c) {
		return false
	}
	for i := range a.c {
		if !m.Same(a.c[i], b.c[i]) {
			return false
		}
	}
	return true
}

// Leq reports whether a ≤ b pointwise: every component of a implies the
// matching component of b.
func (m *Manager) Leq(a, b Transformer) bool {
	for i := range a.c {
		if !m.Implies(a.c[i], b.c[i]) {
			return false
		}
	}
	return true
}

// Monotone reports whether every component of t is positive in every input,
// which is what makes t monotone on the boolean lattice.
func (m *Manager) Monotone(t Transformer) bool {
	for _, f := range t.c {
		for l := 0; l < m.n; l++ {
			set := m.bdd.Makeset([]int{l})
			low := m.bdd.Exist(m.bdd.And(f.node, m.bdd.NIthvar(l)), set)
			high := m.bdd.Exist(m.bdd.And(f.node, m.bdd.Ithvar(l)), set)
			if !m.Implies(Func{low}, Func{high}) {
				return false
			}
		}
	}
	return true
}

// Compose returns t1∘t2, the transformer x ↦ t1(t2(x)).
func (m *Manager) Compose(t1, t2 Transformer) Transformer {
	sub := m.substitution(t2)
	c := make([]Func, len(t1.c))
	for i, f := range t1.c {
		c[i] = sub(f)
	}
	return Transformer{c: c}
}

// Substitute returns f(t(x)): every input j of f is replaced by component j
// of t.
func (m *Manager) Substitute(f Func, t Transformer) Func {
	return m.substitution(t)(f)
}

type vertex struct {
	level, low, high int
}

// substitution returns a function that rewrites diagrams bottom-up,
// replacing each decision on level l by an if-then-else on t's component for
// the input at level l. Results are memoized across calls.
func (m *Manager) substitution(t Transformer) func(Func) Func {
	memo := map[int]rudd.Node{
		*m.zeros: m.zeros,
		*m.ones:  m.ones,
	}
	var rewrite func(id int, table map[int]vertex) rudd.Node
	rewrite = func(id int, table map[int]vertex) rudd.Node {
		if r, ok := memo[id]; ok {
			return r
		}
		v := table[id]
		r := m.bdd.Ite(t.c[m.input[v.level]].node, rewrite(v.high, table), rewrite(v.low, table))
		memo[id] = r
		return r
	}
	return func(f Func) Func {
		if r, ok := memo[*f.node]; ok {
			return Func{r}
		}
		table := make(map[int]vertex)
		_ = m.bdd.Allnodes(func(id, level, low, high int) error {
			table[id] = vertex{level: level, low: low, high: high}
			return nil
		}, f.node)
		return Func{rewrite(*f.node, table)}
	}
}
