package reconcile

import (
	"fmt"
	"time"
)

// Config holds the scheduling settings for status checks.
type Config struct {
	// Workers is the number of orders checked in parallel.
	Workers int `mapstructure:"workers" default:"8"`
	// IntervalSeconds is the pause between runs in watch mode.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"60"`
	// LeaseSeconds bounds how long one process may hold an order. Zero disables leases.
	LeaseSeconds int `mapstructure:"lease_seconds" default:"120"`
	// ForwardOnly ignores remote statuses that rank behind the local one.
	ForwardOnly bool `mapstructure:"forward_only" default:"false"`
}

// Interval returns the watch interval as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// LeaseTTL returns the lease lifetime as a duration.
func (c Config) LeaseTTL() time.Duration {
	return time.Duration(c.LeaseSeconds) * time.Second
}

// Validate checks the scheduler bounds.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("scheduler.workers must be at least 1")
	}
	if c.IntervalSeconds < 1 {
		return fmt.Errorf("scheduler.interval_seconds must be at least 1")
	}
	if c.LeaseSeconds < 0 {
		return fmt.Errorf("scheduler.lease_seconds must not be negative")
	}
	return nil
}
