// Package models defines the order record persisted by the store and the
// closed sets of order types and statuses.
//
// Statuses are totally ordered by workflow rank:
//
//	ordered < processing < completed
//
// An order takes part in status reconciliation only when it carries an
// external id and is not completed (see Order.IsReconcilable).
package models
