package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/models"
	"github.com/rfielding/modalmu/process"
)

func TestCheckBuiltins(t *testing.T) {
	for _, m := range models.All() {
		t.Run(m.Name(), func(t *testing.T) {
			out, err := run(t, "check", "--check-invariants", m.Name())
			require.NoError(t, err, out)
			assert.Contains(t, out, "Model "+m.Name())
			assert.NotContains(t, out, "FAIL")
		})
	}
}

func TestCheckMetrics(t *testing.T) {
	out, err := run(t, "check", "--metrics", "stack")
	require.NoError(t, err)
	assert.Contains(t, out, "# TYPE modalmu_solver_updates_total counter")
	assert.Contains(t, out, `modalmu_solver_blocks_total{kind="mu"}`)
	assert.Contains(t, out, "modalmu_solve_duration_seconds_count 7")
}

const broken = `name: broken
initial: Main
processes:
  - name: Main
    propositions: [idle]
    rules:
      - [{action: stop}]
properties:
  - name: never stops
    expect: true
    formula: {ag: {box: {action: stop, of: false}}}
  - name: idle
    formula: {atomic: idle}
`

func TestCheckFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	out, err := run(t, "check", path)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 properties failed", err.Error())
	assert.Contains(t, out, "FAIL: never stops\n  (expected true, got false)\n")
	assert.Contains(t, out, "true  idle\n")
}

type deadlocked struct{}

func (deadlocked) Name() string        { return "deadlocked" }
func (deadlocked) Description() string { return "" }
func (deadlocked) System() process.System {
	m := process.NewModel("deadlocked", "Stuck")
	m.Define("Stuck")
	return m
}
func (deadlocked) Properties() []models.Property {
	return []models.Property{{Name: "open", Formula: &formula.Variable{Name: "X"}}}
}

func TestCheckError(t *testing.T) {
	var out bytes.Buffer
	_, err := check(&out, deadlocked{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checking open")
}

func TestModelsCommand(t *testing.T) {
	out, err := run(t, "models")
	require.NoError(t, err)
	assert.Equal(t, "orders   An order is placed, reviewed and then either accepted and shipped, or\n"+
		"purple   Scenario: Japanese PURPLE diplomatic cipher keyspace collapse.\n"+
		"stack    A process that either stops, or pushes, runs a nested copy of itself,\n", out)
}
