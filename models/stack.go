package models

import (
	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/process"
)

// Stack produces balanced pushes and pops:
//
//	Main {idle} -> push Main pop Main | done
//
// No finite-state system has these runs, which makes it a useful check of
// call and return handling.
type Stack struct{}

func (Stack) Name() string { return "stack" }

func (Stack) Description() string {
	return `A process that either stops, or pushes, runs a nested copy of itself,
pops and then runs another copy. Every pop matches an earlier push.`
}

func (Stack) System() process.System {
	m := process.NewModel("stack", "Main")
	m.Define("Main", "idle").
		Rule(process.Act("push", process.Must), process.Call("Main"), process.Act("pop", process.Must), process.Call("Main")).
		Rule(process.Act("done", process.Must))
	return m
}

func chain(f formula.Formula, actions ...string) formula.Formula {
	for i := len(actions) - 1; i >= 0; i-- {
		f = &formula.Diamond{Action: actions[i], F: f}
	}
	return f
}

func (Stack) Properties() []Property {
	return []Property{
		{
			Name:        "[pop]false",
			Description: "A pop never comes first.",
			Formula:     &formula.Box{Action: "pop", F: &formula.False{}},
			Expect:      expect(true),
		},
		{
			Name:        "EF []false",
			Description: "Every run can stop.",
			Formula:     formula.EF(terminated()),
			Expect:      expect(true),
		},
		{
			Name:        "AF []false",
			Description: "Every run stops (pushes can go on forever).",
			Formula:     formula.AF(terminated()),
			Expect:      expect(false),
		},
		{
			Name:        "<push><done><pop>idle",
			Description: "After a matching pop the process is idle again.",
			Formula:     chain(atom("idle"), "push", "done", "pop"),
			Expect:      expect(true),
		},
		{
			Name:        "<push><done><pop><done><pop>true",
			Description: "A second pop needs a second push.",
			Formula:     chain(&formula.True{}, "push", "done", "pop", "done", "pop"),
			Expect:      expect(false),
		},
		{
			Name:        "<push><push><done><pop><done><pop><done>[]false",
			Description: "Two pushes are matched by two pops.",
			Formula:     chain(terminated(), "push", "push", "done", "pop", "done", "pop", "done"),
			Expect:      expect(true),
		},
		{
			Name:        "AG(EF <done>true | []false)",
			Description: "Stopping is never ruled out before the end.",
			Formula:     formula.AG(&formula.Or{Left: formula.EF(can("done")), Right: terminated()}),
			Expect:      expect(true),
		},
	}
}
