package formula

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAML wraps a Formula so it can be embedded in YAML documents.
//
// A formula is written as a tree of single-key mappings:
//
//	true | false | p
//	{atomic: p}  {not: f}  {and: [f, g, ...]}  {or: [f, g, ...]}
//	{box: {action: a, of: f}}  {diamond: {action: a, of: f}}
//	{mu: {var: X, of: f}}  {nu: {var: X, of: f}}  {var: X}
//	{ax: f} {ex: f} {af: f} {ef: f} {ag: f} {eg: f}
//	{implies: [f, g]} {au: [f, g]} {eu: [f, g]} {aw: [f, g]} {ew: [f, g]}
//
// A bare scalar other than true and false is an atomic proposition.
type YAML struct {
	Formula
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (y *YAML) UnmarshalYAML(value *yaml.Node) error {
	f, err := DecodeYAML(value)
	if err != nil {
		return err
	}
	y.Formula = f
	return nil
}

// DecodeYAML builds a formula from a YAML node. Errors carry the line and
// column of the offending node.
func DecodeYAML(n *yaml.Node) (Formula, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return nil, position(n, "empty document")
		}
		return DecodeYAML(n.Content[0])
	case yaml.AliasNode:
		return DecodeYAML(n.Alias)
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, position(n, "a formula must have exactly one operator key, found %d", len(n.Content)/2)
		}
		return decodeOperator(n.Content[0], n.Content[1])
	default:
		return nil, position(n, "unexpected %s", kindName(n.Kind))
	}
}

func decodeScalar(n *yaml.Node) (Formula, error) {
	if n.Tag == "!!bool" || n.Tag == "" {
		switch n.Value {
		case "true":
			return &True{}, nil
		case "false":
			return &False{}, nil
		}
	}
	if n.Value == "" {
		return nil, position(n, "empty formula")
	}
	return &Atomic{Prop: n.Value}, nil
}

func decodeOperator(key, arg *yaml.Node) (Formula, error) {
	switch key.Value {
	case "atomic":
		p, err := name(arg)
		if err != nil {
			return nil, err
		}
		return &Atomic{Prop: p}, nil
	case "var":
		x, err := name(arg)
		if err != nil {
			return nil, err
		}
		return &Variable{Name: x}, nil
	case "not":
		f, err := DecodeYAML(arg)
		if err != nil {
			return nil, err
		}
		return &Not{F: f}, nil
	case "and", "or":
		fs, err := operands(arg, 2, -1)
		if err != nil {
			return nil, err
		}
		out := fs[0]
		for _, f := range fs[1:] {
			if key.Value == "and" {
				out = &And{Left: out, Right: f}
			} else {
				out = &Or{Left: out, Right: f}
			}
		}
		return out, nil
	case "box", "diamond":
		action, f, err := scoped(arg, "action", false)
		if err != nil {
			return nil, err
		}
		if key.Value == "box" {
			return &Box{Action: action, F: f}, nil
		}
		return &Diamond{Action: action, F: f}, nil
	case "mu", "nu":
		x, f, err := scoped(arg, "var", true)
		if err != nil {
			return nil, err
		}
		if key.Value == "mu" {
			return &Lfp{Var: x, F: f}, nil
		}
		return &Gfp{Var: x, F: f}, nil
	case "ax", "ex", "af", "ef", "ag", "eg":
		f, err := DecodeYAML(arg)
		if err != nil {
			return nil, err
		}
		return unaryCTL[key.Value](f), nil
	case "implies", "au", "eu", "aw", "ew":
		fs, err := operands(arg, 2, 2)
		if err != nil {
			return nil, err
		}
		return binaryCTL[key.Value](fs[0], fs[1]), nil
	default:
		return nil, position(key, "unknown operator %q", key.Value)
	}
}

var unaryCTL = map[string]func(Formula) Formula{
	"ax": AX, "ex": EX, "af": AF, "ef": EF, "ag": AG, "eg": EG,
}

var binaryCTL = map[string]func(Formula, Formula) Formula{
	"implies": Implies, "au": AU, "eu": EU, "aw": AW, "ew": EW,
}

func name(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return "", position(n, "expected a name")
	}
	return n.Value, nil
}

func operands(n *yaml.Node, lo, hi int) ([]Formula, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, position(n, "expected a list of formulas")
	}
	if len(n.Content) < lo || (hi >= 0 && len(n.Content) > hi) {
		return nil, position(n, "wrong number of operands: %d", len(n.Content))
	}
	out := make([]Formula, 0, len(n.Content))
	for _, c := range n.Content {
		f, err := DecodeYAML(c)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// scoped decodes {<label>: name, of: formula}.
func scoped(n *yaml.Node, label string, required bool) (string, Formula, error) {
	if n.Kind != yaml.MappingNode {
		return "", nil, position(n, "expected a mapping with %q and \"of\"", label)
	}
	var (
		value string
		body  Formula
		seen  bool
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		switch k.Value {
		case label:
			if v.Kind != yaml.ScalarNode {
				return "", nil, position(v, "%s must be a scalar", label)
			}
			value, seen = v.Value, true
		case "of":
			f, err := DecodeYAML(v)
			if err != nil {
				return "", nil, err
			}
			body = f
		default:
			return "", nil, position(k, "unexpected key %q", k.Value)
		}
	}
	if body == nil {
		return "", nil, position(n, "missing \"of\"")
	}
	if required && (!seen || value == "") {
		return "", nil, position(n, "missing %q", label)
	}
	return value, body, nil
}

func position(n *yaml.Node, format string, args ...interface{}) error {
	return errors.Wrapf(errors.Errorf(format, args...), "line %d, column %d", n.Line, n.Column)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "node"
	}
}
