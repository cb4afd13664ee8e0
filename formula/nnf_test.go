package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func v(name string) *Variable { return &Variable{Name: name} }
func p(name string) *Atomic   { return &Atomic{Prop: name} }

func TestNNF(t *testing.T) {
	type tc struct {
		Name     string
		Input    Formula
		Expected Formula
	}

	for _, tt := range []tc{
		{
			Name:     "negated atomic stays",
			Input:    &Not{F: p("a")},
			Expected: &Not{F: p("a")},
		},
		{
			Name:     "not true",
			Input:    &Not{F: &True{}},
			Expected: &False{},
		},
		{
			Name:     "not false",
			Input:    &Not{F: &False{}},
			Expected: &True{},
		},
		{
			Name:     "double negation",
			Input:    &Not{F: &Not{F: p("a")}},
			Expected: p("a"),
		},
		{
			Name:     "gfp dualizes to lfp",
			Input:    &Not{F: &Gfp{Var: "X", F: &Or{Left: &False{}, Right: v("X")}}},
			Expected: &Lfp{Var: "X", F: &And{Left: &True{}, Right: v("X")}},
		},
		{
			Name:     "lfp with negated variable",
			Input:    &Not{F: &Lfp{Var: "X", F: &Or{Left: &False{}, Right: &Not{F: v("X")}}}},
			Expected: &Gfp{Var: "X", F: &And{Left: &True{}, Right: &Not{F: v("X")}}},
		},
		{
			Name:     "and",
			Input:    &Not{F: &And{Left: &Diamond{F: &False{}}, Right: &True{}}},
			Expected: &Or{Left: &Box{F: &True{}}, Right: &False{}},
		},
		{
			Name:     "or",
			Input:    &Not{F: &Or{Left: &Box{Action: "a", F: &False{}}, Right: &True{}}},
			Expected: &And{Left: &Diamond{Action: "a", F: &True{}}, Right: &False{}},
		},
		{
			Name:     "box",
			Input:    &Not{F: &Box{Action: "a", F: &True{}}},
			Expected: &Diamond{Action: "a", F: &False{}},
		},
		{
			Name:     "diamond",
			Input:    &Not{F: &Diamond{Action: "a", F: &False{}}},
			Expected: &Box{Action: "a", F: &True{}},
		},
		{
			Name: "nested",
			Input: &Not{F: &Lfp{Var: "X", F: &Or{
				Left:  &Diamond{Action: "b", F: &Diamond{Action: "b", F: &True{}}},
				Right: &Diamond{F: v("X")},
			}}},
			Expected: &Gfp{Var: "X", F: &And{
				Left:  &Box{Action: "b", F: &Box{Action: "b", F: &False{}}},
				Right: &Box{F: v("X")},
			}},
		},
		{
			Name:     "positive input is copied unchanged",
			Input:    &Gfp{Var: "X", F: &And{Left: p("ok"), Right: &Box{F: v("X")}}},
			Expected: &Gfp{Var: "X", F: &And{Left: p("ok"), Right: &Box{F: v("X")}}},
		},
		{
			Name: "shadowing binder keeps its own polarity",
			Input: &Not{F: &Lfp{Var: "X", F: &Or{
				Left:  v("X"),
				Right: &Not{F: &Gfp{Var: "X", F: &Box{F: v("X")}}},
			}}},
			Expected: &Gfp{Var: "X", F: &And{
				Left:  v("X"),
				Right: &Gfp{Var: "X", F: &Box{F: v("X")}},
			}},
		},
		{
			Name:     "free variable under negation",
			Input:    &Not{F: v("Y")},
			Expected: &Not{F: v("Y")},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			got := NNF(tt.Input)
			if diff := cmp.Diff(tt.Expected, got); diff != "" {
				t.Errorf("unexpected NNF (-want +got):\n%s", diff)
			}
			assert.True(t, Equal(tt.Expected, got))
		})
	}
}

func TestNNFDoesNotAliasInput(t *testing.T) {
	in := &And{Left: p("a"), Right: &Box{Action: "x", F: v("X")}}
	out := NNF(in).(*And)

	assert.NotSame(t, in, out)
	assert.NotSame(t, in.Left, out.Left)
	assert.NotSame(t, in.Right, out.Right)
	assert.NotSame(t, in.Right.(*Box).F, out.Right.(*Box).F)
}

func TestString(t *testing.T) {
	f := &Gfp{Var: "X", F: &And{
		Left:  &Box{Action: "b", F: &Not{F: p("p")}},
		Right: &Diamond{F: v("X")},
	}}
	assert.Equal(t, `(nu X.(([b]!"p" && <>X)))`, f.String())
	assert.Equal(t, `(mu Y.((true || false)))`, (&Lfp{Var: "Y", F: &Or{Left: &True{}, Right: &False{}}}).String())
}

func TestSize(t *testing.T) {
	f := &And{Left: p("a"), Right: &Box{F: &Not{F: p("b")}}}
	assert.Equal(t, 5, Size(f))
}
