package main

import (
	"fmt"
	"os"

	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/models"
	"github.com/rfielding/modalmu/process"
	"github.com/rfielding/modalmu/solver"
)

func main() {
	m := models.Orders{}
	sys := m.System()

	// Atomic propositions
	accepted := &formula.Atomic{Prop: "accepted"}
	delivered := &formula.Atomic{Prop: "delivered"}
	cancelled := &formula.Atomic{Prop: "cancelled"}

	// R1: Every accepted order is eventually delivered or cancelled.
	// AG(accepted -> AF(delivered ∨ cancelled))
	r1 := formula.AG(
		formula.Implies(
			accepted,
			formula.AF(&formula.Or{Left: delivered, Right: cancelled}),
		),
	)

	// R2: No state is both delivered and cancelled.
	// AG ¬(delivered ∧ cancelled)
	r2 := formula.AG(
		&formula.Not{
			F: &formula.And{Left: delivered, Right: cancelled},
		},
	)

	// R3: It is possible to deliver an order.
	// EF delivered
	r3 := formula.EF(delivered)

	// R4: It is possible to cancel an order.
	// EF cancelled
	r4 := formula.EF(cancelled)

	// R5: A delivered parcel is signed for before the order settles.
	// A[¬<settle>true W <sign>true]
	r5 := formula.AW(
		&formula.Not{F: &formula.Diamond{Action: "settle", F: &formula.True{}}},
		&formula.Diamond{Action: "sign", F: &formula.True{}},
	)

	ok := true
	ok = check("R1: accepted eventually resolved", r1, sys) && ok
	ok = check("R2: no delivered & cancelled simultaneously", r2, sys) && ok
	ok = check("R3: delivery is possible", r3, sys) && ok
	ok = check("R4: cancellation is possible", r4, sys) && ok
	ok = check("R5: nothing settles before signing", r5, sys) && ok
	if !ok {
		os.Exit(1)
	}
}

func check(name string, f formula.Formula, sys process.System) bool {
	holds, err := solver.Satisfies(sys, f, sys.Initial())
	if err != nil {
		fmt.Printf("ERROR: %s: %v\n", name, err)
		return false
	}
	if holds {
		fmt.Printf("PASS: %s\n", name)
	} else {
		fmt.Printf("FAIL: %s\n", name)
		fmt.Printf("  (The initial process violates the formula)\n")
	}
	return holds
}
