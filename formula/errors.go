package formula

import "fmt"

// StructuralError reports a malformed formula tree, such as an unbound
// variable or a fixpoint variable under negation.
type StructuralError struct {
	Node   Formula
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Node == nil {
		return "malformed formula: " + e.Reason
	}
	return fmt.Sprintf("malformed formula at %s: %s", e.Node, e.Reason)
}

func structural(node Formula, format string, args ...interface{}) error {
	return &StructuralError{Node: node, Reason: fmt.Sprintf(format, args...)}
}
