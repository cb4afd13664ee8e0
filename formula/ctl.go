package formula

import "fmt"

// CTL operators expressed in the modal mu-calculus. Path quantifiers range
// over maximal paths: a path that ends in a state without successors counts
// for EG and does not count for AF.

// Implies: (φ → ψ) ≡ (¬φ ∨ ψ)
func Implies(p, q Formula) Formula {
	return &Or{Left: &Not{F: p}, Right: q}
}

// EX φ: "there exists a next state where φ holds"
func EX(f Formula) Formula {
	return &Diamond{F: f}
}

// AX φ: "for all next states, φ holds"
func AX(f Formula) Formula {
	return &Box{F: f}
}

// EF φ ≡ mu X.(φ ∨ <>X)
func EF(f Formula) Formula {
	x := fresh(f)
	return &Lfp{Var: x, F: &Or{Left: f, Right: &Diamond{F: &Variable{Name: x}}}}
}

// AF φ ≡ mu X.(φ ∨ ([]X ∧ <>true))
func AF(f Formula) Formula {
	x := fresh(f)
	return &Lfp{Var: x, F: &Or{Left: f, Right: progress(x)}}
}

// EG φ ≡ nu X.(φ ∧ (<>X ∨ []false))
func EG(f Formula) Formula {
	x := fresh(f)
	return &Gfp{Var: x, F: &And{Left: f, Right: continues(x)}}
}

// AG φ ≡ nu X.(φ ∧ []X)
func AG(f Formula) Formula {
	x := fresh(f)
	return &Gfp{Var: x, F: &And{Left: f, Right: &Box{F: &Variable{Name: x}}}}
}

// EU is E[p U q] ≡ mu X.(q ∨ (p ∧ <>X)).
func EU(p, q Formula) Formula {
	x := fresh(p, q)
	return &Lfp{Var: x, F: &Or{Left: q, Right: &And{Left: p, Right: &Diamond{F: &Variable{Name: x}}}}}
}

// AU is A[p U q] ≡ mu X.(q ∨ (p ∧ []X ∧ <>true)).
func AU(p, q Formula) Formula {
	x := fresh(p, q)
	return &Lfp{Var: x, F: &Or{Left: q, Right: &And{Left: p, Right: progress(x)}}}
}

// EW is the weak until E[p W q] ≡ nu X.(q ∨ (p ∧ (<>X ∨ []false))).
func EW(p, q Formula) Formula {
	x := fresh(p, q)
	return &Gfp{Var: x, F: &Or{Left: q, Right: &And{Left: p, Right: continues(x)}}}
}

// AW is the weak until A[p W q] ≡ nu X.(q ∨ (p ∧ []X)).
func AW(p, q Formula) Formula {
	x := fresh(p, q)
	return &Gfp{Var: x, F: &Or{Left: q, Right: &And{Left: p, Right: &Box{F: &Variable{Name: x}}}}}
}

// progress is []X ∧ <>true.
func progress(x string) Formula {
	return &And{Left: &Box{F: &Variable{Name: x}}, Right: &Diamond{F: &True{}}}
}

// continues is <>X ∨ []false.
func continues(x string) Formula {
	return &Or{Left: &Diamond{F: &Variable{Name: x}}, Right: &Box{F: &False{}}}
}

// fresh picks a variable name that no binder of the operands uses.
func fresh(operands ...Formula) string {
	used := make(map[string]bool)
	for _, f := range operands {
		Walk(f, func(n Formula) {
			switch b := n.(type) {
			case *Lfp:
				used[b.Var] = true
			case *Gfp:
				used[b.Var] = true
			case *Variable:
				used[b.Name] = true
			}
		})
	}
	for i := 0; ; i++ {
		name := fmt.Sprintf("Z%d", i)
		if !used[name] {
			return name
		}
	}
}
