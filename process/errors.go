package process

import (
	"fmt"
	"strings"
)

// SystemError reports a process system that references something it does
// not define, or whose rules are malformed. Rule and Step are -1 when the
// error is not about a particular rule or step.
type SystemError struct {
	Process string
	Rule    int
	Step    int
	Reason  string
}

func (e *SystemError) Error() string {
	var where []string
	if e.Process != "" {
		where = append(where, "process "+e.Process)
	}
	if e.Rule >= 0 {
		where = append(where, fmt.Sprintf("rule %d", e.Rule))
	}
	if e.Step >= 0 {
		where = append(where, fmt.Sprintf("step %d", e.Step))
	}
	if len(where) == 0 {
		return "invalid process system: " + e.Reason
	}
	return fmt.Sprintf("invalid process system at %s: %s", strings.Join(where, ", "), e.Reason)
}

func systemError(p string, rule, step int, format string, args ...interface{}) *SystemError {
	return &SystemError{Process: p, Rule: rule, Step: step, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks that sys is well formed: the initial process and every
// called process are defined, no process is listed twice, every rule has at
// least one step, every step is either an action or a call, and recursion
// is guarded.
func Validate(sys System) error {
	defined := make(map[string]bool)
	for _, p := range sys.Processes() {
		if p == "" {
			return systemError("", -1, -1, "process with an empty name")
		}
		if defined[p] {
			return systemError(p, -1, -1, "defined more than once")
		}
		defined[p] = true
	}
	if sys.Initial() == "" {
		return systemError("", -1, -1, "no initial process")
	}
	if !defined[sys.Initial()] {
		return systemError(sys.Initial(), -1, -1, "initial process is not defined")
	}
	for _, p := range sys.Processes() {
		for i, r := range sys.Rules(p) {
			if len(r) == 0 {
				return systemError(p, i, -1, "empty rule")
			}
			for j, s := range r {
				switch {
				case s.Action != "" && s.Call != "":
					return systemError(p, i, j, "step has both an action and a call")
				case s.Action == "" && s.Call == "":
					return systemError(p, i, j, "step has neither an action nor a call")
				case s.IsCall() && !defined[s.Call]:
					return systemError(p, i, j, "call to undefined process %s", s.Call)
				case !s.IsCall() && s.Kind != Must && s.Kind != May:
					return systemError(p, i, j, "unknown step kind %s", s.Kind)
				}
			}
		}
	}
	return checkGuarded(sys)
}

// checkGuarded rejects unguarded recursion: a process that can reach a call
// to itself through calls in first position only, without ever taking an
// action step first.
func checkGuarded(sys System) error {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int)
	var visit func(p string) error
	visit = func(p string) error {
		switch state[p] {
		case active:
			return systemError(p, -1, -1, "unguarded recursion: %s can call itself before taking any action", p)
		case done:
			return nil
		}
		state[p] = active
		for _, r := range sys.Rules(p) {
			if len(r) > 0 && r[0].IsCall() {
				if err := visit(r[0].Call); err != nil {
					return err
				}
			}
		}
		state[p] = done
		return nil
	}
	for _, p := range sys.Processes() {
		if err := visit(p); err != nil {
			return err
		}
	}
	return nil
}
