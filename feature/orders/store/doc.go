// Package store is the gorm-backed persistence of orders.
//
// Reads return (nil, nil) for unknown ids. Writes are conditional so that a
// status write only happens on an actual change, an external id is attached
// at most once and only completed orders can be deleted.
package store
