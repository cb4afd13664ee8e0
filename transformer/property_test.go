package transformer

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const dim = 4

// positive decodes seeds into a positive boolean function (and/or over
// inputs and constants), the only kind the solver ever builds.
func positive(m *Manager, seeds []int, pos *int, depth int) Func {
	next := func() int {
		if *pos >= len(seeds) {
			return 0
		}
		c := seeds[*pos]
		*pos++
		return c
	}
	c := next()
	if depth == 0 || c%5 < 2 {
		switch c % 7 {
		case 0:
			return m.Const(false)
		case 1:
			return m.Const(true)
		default:
			return m.Input(c % dim)
		}
	}
	l := positive(m, seeds, pos, depth-1)
	r := positive(m, seeds, pos, depth-1)
	if c%2 == 0 {
		return m.And(l, r)
	}
	return m.Or(l, r)
}

func build(m *Manager, seeds []int) Transformer {
	pos := 0
	c := make([]Func, dim)
	for i := range c {
		c[i] = positive(m, seeds, &pos, 3)
	}
	t, _ := m.Build(c)
	return t
}

func genSeeds() gopter.Gen {
	return gen.SliceOfN(40, gen.IntRange(0, 1000))
}

func leq(a, b []bool) bool {
	for i := range a {
		if a[i] && !b[i] {
			return false
		}
	}
	return true
}

func TestTransformerProperties(t *testing.T) {
	m, err := New(dim, []int{3, 1, 0, 2})
	if err != nil {
		t.Fatal(err)
	}
	inputs := allInputs(dim)

	properties := gopter.NewProperties(nil)

	properties.Property("positive transformers are monotone", prop.ForAll(
		func(seeds []int) bool {
			tr := build(m, seeds)
			if !m.Monotone(tr) {
				return false
			}
			for _, v1 := range inputs {
				for _, v2 := range inputs {
					if leq(v1, v2) && !leq(m.Apply(tr, v1), m.Apply(tr, v2)) {
						return false
					}
				}
			}
			return true
		},
		genSeeds(),
	))

	properties.Property("compose is sequential application", prop.ForAll(
		func(s1, s2 []int) bool {
			t1, t2 := build(m, s1), build(m, s2)
			c := m.Compose(t1, t2)
			for _, in := range inputs {
				want := m.Apply(t1, m.Apply(t2, in))
				got := m.Apply(c, in)
				for i := range want {
					if want[i] != got[i] {
						return false
					}
				}
			}
			return m.Monotone(c)
		},
		genSeeds(), genSeeds(),
	))

	properties.Property("leq agrees with pointwise order", prop.ForAll(
		func(s1, s2 []int) bool {
			t1, t2 := build(m, s1), build(m, s2)
			pointwise := true
			for _, in := range inputs {
				if !leq(m.Apply(t1, in), m.Apply(t2, in)) {
					pointwise = false
				}
			}
			return pointwise == m.Leq(t1, t2)
		},
		genSeeds(), genSeeds(),
	))

	properties.TestingRun(t)
}
