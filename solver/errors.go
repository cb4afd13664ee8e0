package solver

import "fmt"

// InternalError reports a broken solver invariant, for instance a
// transformer update that moves against the direction of its fixpoint.
// It always indicates a defect.
type InternalError struct {
	// Node is the name of the state whose assignment was being updated.
	Node string
	// Var is the subformula involved, or -1.
	Var    int
	Reason string
}

func (e *InternalError) Error() string {
	if e.Var >= 0 {
		return fmt.Sprintf("internal solver error at %s, subformula %d: %s", e.Node, e.Var, e.Reason)
	}
	return fmt.Sprintf("internal solver error at %s: %s", e.Node, e.Reason)
}
