// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either MySQL (production) or SQLite (local runs and
// tests) based on the application's configuration.
//
// # Connect
//
// Connect builds the DSN with connection and I/O timeouts, applies pool
// settings and pings the database before returning.
//
// # Schema Inspection
//
// The orders table is owned by the order API, not by this service. Before the
// scheduler starts it checks that the columns it reads and writes exist, using
// GetTableColumns and MissingColumns.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "orders", []string{"id", "status"})
package database
