package process

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/modalmu/formula"
)

const recursion = `
name: recursion
initial: Main
processes:
  - name: Main
    propositions: [idle]
    rules:
      - [{action: a, kind: must}, {call: Main}, {action: b, kind: may}]
      - [{action: stop}]
properties:
  - name: can-stop
    expect: true
    formula: {ef: {diamond: {action: stop, of: true}}}
  - name: unannotated
    formula: idle
`

func TestLoad(t *testing.T) {
	m, props, err := Load(strings.NewReader(recursion))
	require.NoError(t, err)

	assert.Equal(t, "recursion", m.Name)
	assert.Equal(t, "Main", m.Initial())
	assert.Equal(t, []string{"idle"}, m.Propositions("Main"))
	rules := m.Rules("Main")
	require.Len(t, rules, 2)
	assert.Equal(t, Rule{Act("a", Must), Call("Main"), Act("b", May)}, rules[0])
	assert.Equal(t, Rule{Act("stop", Must)}, rules[1])

	require.Len(t, props, 2)
	require.NotNil(t, props[0].Expect)
	assert.True(t, *props[0].Expect)
	assert.True(t, formula.Equal(formula.EF(&formula.Diamond{Action: "stop", F: &formula.True{}}), props[0].Formula.Formula))
	assert.Nil(t, props[1].Expect)
	assert.True(t, formula.Equal(&formula.Atomic{Prop: "idle"}, props[1].Formula.Formula))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(recursion), 0o644))

	m, _, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Main"}, m.Processes())

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	for name, src := range map[string]string{
		"missing initial": `
name: x
processes: [{name: A}]
`,
		"bad kind": `
name: x
initial: A
processes:
  - name: A
    rules: [[{action: a, kind: sometimes}]]
`,
		"action and call": `
name: x
initial: A
processes:
  - name: A
    rules: [[{action: a, call: A}]]
`,
		"empty rule": `
name: x
initial: A
processes:
  - name: A
    rules: [[]]
`,
		"unknown field": `
name: x
initial: A
colour: blue
processes: [{name: A}]
`,
		"property without formula": `
name: x
initial: A
processes: [{name: A}]
properties: [{name: p}]
`,
		"bad formula": `
name: x
initial: A
processes: [{name: A}]
properties: [{name: p, formula: {until: [a, b]}}]
`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := Load(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadSemanticErrors(t *testing.T) {
	for name, src := range map[string]string{
		"undefined callee": `
name: x
initial: A
processes:
  - name: A
    rules: [[{call: B}]]
`,
		"duplicate process": `
name: x
initial: A
processes: [{name: A}, {name: A}]
`,
		"undefined initial": `
name: x
initial: B
processes: [{name: A}]
`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := Load(strings.NewReader(src))
			var serr *SystemError
			assert.True(t, errors.As(err, &serr), "expected a SystemError, got %v", err)
		})
	}
}
