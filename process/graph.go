package process

import (
	"fmt"
	"sort"
)

// StateKind tells where in a process a State sits.
type StateKind int

const (
	// Entry is the process before any rule has fired. It carries the
	// propositions of the process.
	Entry StateKind = iota
	// Exit is the process after a rule has finished; control returns to the
	// caller's continuation.
	Exit
	// Position is the point between two steps of a rule.
	Position
)

func (k StateKind) String() string {
	switch k {
	case Entry:
		return "entry"
	case Exit:
		return "exit"
	default:
		return "position"
	}
}

// State is one node of an expanded process system.
type State struct {
	ID      int
	Process string
	Kind    StateKind
	// Rule and Pos locate a Position state: it is reached after step Pos of
	// rule Rule. Both are -1 for entry and exit states.
	Rule, Pos int
	Props     []string
}

// Name is a readable, unique label for the state.
func (s State) Name() string {
	switch s.Kind {
	case Entry:
		return s.Process
	case Exit:
		return s.Process + ".exit"
	default:
		return fmt.Sprintf("%s.r%d.%d", s.Process, s.Rule, s.Pos+1)
	}
}

// HasProp reports whether prop holds in the state.
func (s State) HasProp(prop string) bool {
	for _, p := range s.Props {
		if p == prop {
			return true
		}
	}
	return false
}

// Edge is one step from a state. For a call step To is the state the rule
// continues in once the called process exits.
type Edge struct {
	From, To int
	Step     Step
}

// Graph is the expansion of the processes reachable from the initial one.
// Each process gets an entry and an exit state and every rule a chain of
// position states, so a call never duplicates the called process.
type Graph struct {
	States []State
	// Out holds the edges leaving each state, in rule order.
	Out     [][]Edge
	Entry   map[string]int
	Exit    map[string]int
	Initial int
}

// Expand validates sys and builds the graph of the processes reachable
// from its initial process.
func Expand(sys System) (*Graph, error) {
	if err := Validate(sys); err != nil {
		return nil, err
	}
	g := &Graph{
		Entry: make(map[string]int),
		Exit:  make(map[string]int),
	}

	queue := []string{sys.Initial()}
	g.addProcess(sys, sys.Initial())
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for i, r := range sys.Rules(p) {
			from := g.Entry[p]
			for j, s := range r {
				if s.IsCall() {
					if _, ok := g.Entry[s.Call]; !ok {
						g.addProcess(sys, s.Call)
						queue = append(queue, s.Call)
					}
				}
				to := g.Exit[p]
				if j < len(r)-1 {
					to = g.addState(State{Process: p, Kind: Position, Rule: i, Pos: j})
				}
				g.Out[from] = append(g.Out[from], Edge{From: from, To: to, Step: s})
				from = to
			}
		}
	}
	g.Initial = g.Entry[sys.Initial()]
	return g, nil
}

func (g *Graph) addProcess(sys System, p string) {
	props := append([]string(nil), sys.Propositions(p)...)
	sort.Strings(props)
	g.Entry[p] = g.addState(State{Process: p, Kind: Entry, Rule: -1, Pos: -1, Props: props})
	g.Exit[p] = g.addState(State{Process: p, Kind: Exit, Rule: -1, Pos: -1})
}

func (g *Graph) addState(s State) int {
	s.ID = len(g.States)
	g.States = append(g.States, s)
	g.Out = append(g.Out, nil)
	return s.ID
}

// Len returns the number of states.
func (g *Graph) Len() int {
	return len(g.States)
}

// Processes returns the reachable processes in the order they were expanded.
func (g *Graph) Processes() []string {
	var out []string
	for _, s := range g.States {
		if s.Kind == Entry {
			out = append(out, s.Process)
		}
	}
	return out
}

// Pred returns, for every state, the states with an edge into it.
func (g *Graph) Pred() [][]int {
	pred := make([][]int, len(g.States))
	for _, edges := range g.Out {
		for _, e := range edges {
			pred[e.To] = appendUnique(pred[e.To], e.From)
		}
	}
	return pred
}

// Callers returns, for every entry state, the states with a call edge to
// its process.
func (g *Graph) Callers() [][]int {
	callers := make([][]int, len(g.States))
	for _, edges := range g.Out {
		for _, e := range edges {
			if e.Step.IsCall() {
				entry := g.Entry[e.Step.Call]
				callers[entry] = appendUnique(callers[entry], e.From)
			}
		}
	}
	return callers
}

func appendUnique(xs []int, x int) []int {
	for _, y := range xs {
		if y == x {
			return xs
		}
	}
	return append(xs, x)
}
