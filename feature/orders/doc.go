// Package orders holds the order lifecycle: creation with provider
// submission, listing, explicit status edits, single-order checks and
// deletion of completed orders.
//
// Sub-packages:
//   - models: the Order record and its type/status sets
//   - store: gorm persistence
//   - reconcile: the status check job and scheduler
package orders
