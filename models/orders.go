package models

import (
	"github.com/rfielding/modalmu/formula"
	"github.com/rfielding/modalmu/process"
)

// Orders is the lifecycle of a single order.
//
// Processes:
//
//	Order {new}          -> place Review settle
//	Review {review}      -> accept Deliver | cancel? Cancelled
//	Deliver {accepted}   -> ship Delivered | lose? Deliver
//	Delivered {delivered} -> sign
//	Cancelled {cancelled} -> refund
//
// Cancelling and losing a parcel are may steps: they can happen but no
// implementation is obliged to do them. Every lost parcel is redelivered
// by a nested Deliver, so the stack grows with every loss.
type Orders struct{}

func (Orders) Name() string { return "orders" }

func (Orders) Description() string {
	return `An order is placed, reviewed and then either accepted and shipped, or
cancelled. A courier may lose the parcel, in which case delivery starts
over. Every order is settled once review has finished.`
}

func (Orders) System() process.System {
	m := process.NewModel("orders", "Order")
	m.Define("Order", "new").
		Rule(process.Act("place", process.Must), process.Call("Review"), process.Act("settle", process.Must))
	m.Define("Review", "review").
		Rule(process.Act("accept", process.Must), process.Call("Deliver")).
		Rule(process.Act("cancel", process.May), process.Call("Cancelled"))
	m.Define("Deliver", "accepted").
		Rule(process.Act("ship", process.Must), process.Call("Delivered")).
		Rule(process.Act("lose", process.May), process.Call("Deliver"))
	m.Define("Delivered", "delivered").Rule(process.Act("sign", process.Must))
	m.Define("Cancelled", "cancelled").Rule(process.Act("refund", process.Must))
	return m
}

func (Orders) Properties() []Property {
	accepted, delivered, cancelled := atom("accepted"), atom("delivered"), atom("cancelled")
	return []Property{
		{
			Name:        "AG(accepted -> AF(delivered | cancelled))",
			Description: "Every accepted order is eventually delivered or cancelled.",
			Formula:     formula.AG(formula.Implies(accepted, formula.AF(&formula.Or{Left: delivered, Right: cancelled}))),
			Expect:      expect(true),
		},
		{
			Name:        "AG !(delivered & cancelled)",
			Description: "No order is both delivered and cancelled.",
			Formula:     formula.AG(&formula.Not{F: &formula.And{Left: delivered, Right: cancelled}}),
			Expect:      expect(true),
		},
		{
			Name:        "EF delivered",
			Description: "Delivery is possible.",
			Formula:     formula.EF(delivered),
			Expect:      expect(true),
		},
		{
			Name:        "EF cancelled",
			Description: "Cancellation is possible.",
			Formula:     formula.EF(cancelled),
			Expect:      expect(true),
		},
		{
			Name:        "AG !cancelled",
			Description: "No required step leads to a cancellation.",
			Formula:     formula.AG(&formula.Not{F: cancelled}),
			Expect:      expect(true),
		},
		{
			Name:        "AF <settle>true",
			Description: "Following required steps, every order reaches settlement.",
			Formula:     formula.AF(can("settle")),
			Expect:      expect(true),
		},
		{
			Name:        "EG !delivered",
			Description: "A parcel can be lost forever.",
			Formula:     formula.EG(&formula.Not{F: delivered}),
			Expect:      expect(true),
		},
		{
			Name:        "<place><accept><ship><sign><settle>[]false",
			Description: "Signing for a parcel returns to the order, which settles and stops.",
			Formula: &formula.Diamond{Action: "place", F: &formula.Diamond{Action: "accept", F: &formula.Diamond{Action: "ship",
				F: &formula.Diamond{Action: "sign", F: &formula.Diamond{Action: "settle", F: terminated()}}}}},
			Expect: expect(true),
		},
	}
}
