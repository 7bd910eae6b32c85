// Package order contains the Order aggregate: a customer's set of priced line
// items moving through the PENDING, PAID, DELIVERED and CANCELLED states.
//
// Invariants enforced here:
//   - at least one line item, every quantity positive, no pizza repeated
//   - total equals Σ unit price × quantity and never changes after creation
//   - status moves only along the transition table in status.go
//   - re-applying the current status is always accepted
package order
