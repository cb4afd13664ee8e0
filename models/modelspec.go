// Package models holds example process systems together with the
// properties they are expected to satisfy.
package models

import (
	"sort"

	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/process"
)

// Property describes one named formula attached to a model.
type Property struct {
	Name        string // e.g. "AF delivered"
	Description string // human meaning
	Formula     formula.Formula
	Expect      *bool // nil when no verdict is recorded
}

// ModelSpec is the small API that example models implement.
type ModelSpec interface {
	Name() string
	Description() string
	System() process.System
	Properties() []Property
}

var registry = map[string]ModelSpec{}

func register(m ModelSpec) {
	registry[m.Name()] = m
}

func init() {
	register(Orders{})
	register(Purple{})
	register(Stack{})
}

// All returns the built-in models sorted by name.
func All() []ModelSpec {
	out := make([]ModelSpec, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Lookup returns the built-in model called name.
func Lookup(name string) (ModelSpec, bool) {
	m, ok := registry[name]
	return m, ok
}

type file struct {
	model *process.Model
	props []Property
}

func (f *file) Name() string           { return f.model.Name }
func (f *file) Description() string    { return "loaded from file" }
func (f *file) System() process.System { return f.model }
func (f *file) Properties() []Property { return f.props }

// Load returns the built-in model called arg, or reads arg as a YAML model
// file when no built-in has that name.
func Load(arg string) (ModelSpec, error) {
	if m, ok := Lookup(arg); ok {
		return m, nil
	}
	m, props, err := process.LoadFile(arg)
	if err != nil {
		return nil, err
	}
	f := &file{model: m}
	for _, p := range props {
		f.props = append(f.props, Property{
			Name:        p.Name,
			Description: p.Description,
			Formula:     p.Formula.Formula,
			Expect:      p.Expect,
		})
	}
	return f, nil
}

func expect(b bool) *bool { return &b }

func atom(p string) formula.Formula { return &formula.Atomic{Prop: p} }

func can(action string) formula.Formula {
	return &formula.Diamond{Action: action, F: &formula.True{}}
}

func terminated() formula.Formula {
	return &formula.Box{F: &formula.False{}}
}
