// Package billing contains the billing ledger domain model: the Bill
// aggregate root, its line items, and the invariants that tie a bill's
// running total to the set of non-deleted items it owns.
package billing
