// Package reconcile keeps local order statuses in line with the provider.
//
// StatusJob checks a single order: it fetches the remote order and writes
// the remote status only when it differs from the local one. The Scheduler
// selects every order that is not completed and has an external id, and runs
// one job per order on a bounded worker pool. Orders are independent: a
// failing check never affects the others.
//
// When a lease cache is configured, each order is leased for the duration
// of its check so that concurrent runs in other processes skip it.
package reconcile
