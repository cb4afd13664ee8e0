package models

import (
	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/process"
)

// Purple follows an attacker collapsing the key space of the PURPLE
// cipher. Traffic analysis may be repeated without bound; each round is a
// nested Analyse, so the attack's history is the call stack.
type Purple struct{}

func (Purple) Name() string { return "purple" }

func (Purple) Description() string {
	return `Scenario: Japanese PURPLE diplomatic cipher keyspace collapse.

We model the attacker's progress in shrinking the key hypothesis space
as more traffic is observed. Because the cipher splits the alphabet
into independent vowel and consonant channels, the effective keyspace
collapses much faster than for a well-designed rotor machine.`
}

func (Purple) System() process.System {
	m := process.NewModel("purple", "Attack")
	m.Define("Attack", "unknownKey").
		Rule(process.Act("intercept", process.Must), process.Call("Analyse"), process.Act("report", process.Must))
	m.Define("Analyse", "unsolved").
		Rule(process.Act("observe", process.May), process.Call("Analyse")).
		Rule(process.Act("solveVowels", process.Must), process.Call("Vowels"))
	m.Define("Vowels", "vowelSolved").
		Rule(process.Act("solveConsonants", process.Must), process.Call("Consonants"))
	m.Define("Consonants", "consonantSolved").
		Rule(process.Act("deduce", process.Must), process.Call("UniqueKey"))
	m.Define("UniqueKey", "attackerKnowsKey").
		Rule(process.Act("read", process.Must))
	return m
}

func (Purple) Properties() []Property {
	knows := atom("attackerKnowsKey")
	return []Property{
		{
			Name:        "AF attackerKnowsKey",
			Description: "Eventually the attacker uniquely knows the key.",
			Formula:     formula.AF(knows),
			Expect:      expect(true),
		},
		{
			Name:        "AG !attackerKnowsKey",
			Description: "Key remains forever unknown (desired but false).",
			Formula:     formula.AG(&formula.Not{F: knows}),
			Expect:      expect(false),
		},
		{
			Name:        "EG !attackerKnowsKey",
			Description: "Traffic analysis may go on forever without recovering the key.",
			Formula:     formula.EG(&formula.Not{F: knows}),
			Expect:      expect(true),
		},
		{
			Name:        "A[!vowelSolved U consonantSolved]",
			Description: "Consonants are solved before vowels on every run (they never are).",
			Formula:     formula.AU(&formula.Not{F: atom("vowelSolved")}, atom("consonantSolved")),
			Expect:      expect(false),
		},
		{
			Name:        "AG(consonantSolved -> AX attackerKnowsKey)",
			Description: "Once both channels are solved the key follows in one step.",
			Formula:     formula.AG(formula.Implies(atom("consonantSolved"), formula.AX(knows))),
			Expect:      expect(true),
		},
	}
}
