// Package budget models a finite exploration budget.
//
// A [Budget] splits its capacity into a general pool (Remaining) and a
// priority reserve that can be drawn on explicitly. Budget is a value type:
// every mutating method returns a new Budget and leaves the receiver
// untouched, so callers thread the latest value through their loop.
//
//	b := budget.New(10, budget.WithPriorityReserve(2))
//	for b.HasBudget() {
//	    b = b.Consume(1)
//	    // explore one alternative
//	}
//	if !b.Exhausted() {
//	    b, _ = b.AllocatePriority(2)
//	}
//
// The accounting invariant Used + Remaining <= Total + AddedBack holds after
// any sequence of operations, where AddedBack counts every unit moved into
// Remaining by AllocatePriority, ReallocateUnused, or AdjustBySuccessRate.
package budget
