package models

import (
	"time"
)

// Type is the kind of product an order procures.
type Type string

const (
	// TypeConnector orders a physical connector.
	TypeConnector Type = "connector"
	// TypeVPNConnection orders a VPN connection.
	TypeVPNConnection Type = "vpn_connection"
)

// Types returns every supported order type.
func Types() []Type {
	return []Type{TypeConnector, TypeVPNConnection}
}

// IsValid reports whether t is a supported order type.
func (t Type) IsValid() bool {
	switch t {
	case TypeConnector, TypeVPNConnection:
		return true
	default:
		return false
	}
}

// Status is the fulfilment state of an order.
type Status string

const (
	// StatusOrdered is the initial state of every order.
	StatusOrdered Status = "ordered"
	// StatusProcessing means the provider is working on the order.
	StatusProcessing Status = "processing"
	// StatusCompleted is terminal. Completed orders are no longer reconciled.
	StatusCompleted Status = "completed"
)

// Statuses returns every status in workflow order.
func Statuses() []Status {
	return []Status{StatusOrdered, StatusProcessing, StatusCompleted}
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	return s.Rank() >= 0
}

// Rank returns the position of s in the workflow, or -1 for unknown values.
func (s Status) Rank() int {
	switch s {
	case StatusOrdered:
		return 0
	case StatusProcessing:
		return 1
	case StatusCompleted:
		return 2
	default:
		return -1
	}
}

// Order is the local record of an order placed with the provider.
type Order struct {
	// ID is the local UUID. Immutable.
	ID string `gorm:"column:id;primaryKey;size:36" json:"id"`
	// Name is a human readable label.
	Name string `gorm:"column:name;size:255;not null" json:"name"`
	// Type is set at creation and never changes.
	Type Type `gorm:"column:type;size:32;not null" json:"type"`
	// Status mirrors the provider state once reconciled.
	Status Status `gorm:"column:status;size:32;not null;default:ordered;index" json:"status"`
	// ExternalID is the provider's identifier, nil until the provider confirmed the order.
	ExternalID *string `gorm:"column:external_id;size:64;index" json:"external_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Order) TableName() string {
	return "orders"
}

// HasExternalID reports whether the provider has confirmed the order.
func (o *Order) HasExternalID() bool {
	return o.ExternalID != nil && *o.ExternalID != ""
}

// ExternalIDValue returns the external id or an empty string.
func (o *Order) ExternalIDValue() string {
	if o.ExternalID == nil {
		return ""
	}
	return *o.ExternalID
}

// IsReconcilable reports whether the order takes part in status checks:
// it must be known to the provider and not completed yet.
func (o *Order) IsReconcilable() bool {
	return o.HasExternalID() && o.Status != StatusCompleted
}

// Columns lists the columns the store reads and writes.
func Columns() []string {
	return []string{"id", "name", "type", "status", "external_id", "created_at", "updated_at"}
}
