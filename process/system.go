package process

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the modality of an action step.
type Kind int

const (
	// Must steps are guaranteed; every must step is also a may step.
	Must Kind = iota
	// May steps are possible but not guaranteed.
	May
)

func (k Kind) String() string {
	switch k {
	case Must:
		return "must"
	case May:
		return "may"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind turns "may" or "must" into a Kind. The empty string is must.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "must":
		return Must, nil
	case "may":
		return May, nil
	default:
		return Must, errors.Errorf("unknown step kind %q", s)
	}
}

// Step is one element of a rule: either an action with a modality, or a
// call to a process that runs to completion before the rule continues.
type Step struct {
	Action string
	Kind   Kind
	Call   string
}

// Act returns an action step.
func Act(action string, kind Kind) Step {
	return Step{Action: action, Kind: kind}
}

// Call returns a step that runs process p.
func Call(p string) Step {
	return Step{Call: p}
}

// IsCall reports whether the step runs another process.
func (s Step) IsCall() bool {
	return s.Call != ""
}

// Matches reports whether the step is an action step labelled action. The
// empty action matches every action step.
func (s Step) Matches(action string) bool {
	return !s.IsCall() && (action == "" || action == s.Action)
}

func (s Step) String() string {
	if s.IsCall() {
		return s.Call
	}
	if s.Kind == May {
		return s.Action + "?"
	}
	return s.Action
}

// Rule is a sequence of steps executed left to right.
type Rule []Step

func (r Rule) String() string {
	parts := make([]string, len(r))
	for i, s := range r {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// System is the read-only view of a process system the checker consumes.
type System interface {
	// Processes lists every defined process in a stable order.
	Processes() []string
	Initial() string
	// Rules returns the rules of p; a process without rules deadlocks.
	Rules(p string) []Rule
	Propositions(p string) []string
}

// Definition is one process of a Model.
type Definition struct {
	Name         string
	Propositions []string
	Rules        []Rule
}

// Rule appends a rule made of steps and returns d for chaining.
func (d *Definition) Rule(steps ...Step) *Definition {
	d.Rules = append(d.Rules, Rule(steps))
	return d
}

// Model is an in-memory System built by hand or loaded from YAML.
type Model struct {
	Name    string
	initial string
	order   []string
	defs    map[string]*Definition
}

// NewModel returns an empty model whose initial process is initial.
func NewModel(name, initial string) *Model {
	return &Model{
		Name:    name,
		initial: initial,
		defs:    make(map[string]*Definition),
	}
}

// Define adds process p, or returns the existing definition with props
// added to it.
func (m *Model) Define(p string, props ...string) *Definition {
	d, ok := m.defs[p]
	if !ok {
		d = &Definition{Name: p}
		m.defs[p] = d
		m.order = append(m.order, p)
	}
	d.Propositions = append(d.Propositions, props...)
	return d
}

// Lookup returns the definition of p.
func (m *Model) Lookup(p string) (*Definition, bool) {
	d, ok := m.defs[p]
	return d, ok
}

func (m *Model) Processes() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Model) Initial() string {
	return m.initial
}

func (m *Model) Rules(p string) []Rule {
	if d, ok := m.defs[p]; ok {
		return d.Rules
	}
	return nil
}

func (m *Model) Propositions(p string) []string {
	if d, ok := m.defs[p]; ok {
		return d.Propositions
	}
	return nil
}

func (m *Model) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Process system %s (initial %s)\n", m.Name, m.initial))
	for _, p := range m.order {
		d := m.defs[p]
		props := append([]string(nil), d.Propositions...)
		sort.Strings(props)
		sb.WriteString(fmt.Sprintf("  %s {%s}\n", p, strings.Join(props, ", ")))
		for _, r := range d.Rules {
			sb.WriteString(fmt.Sprintf("    %s -> %s\n", p, r))
		}
	}
	return sb.String()
}
