// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections (production)
// or SQLite (local runs and tests) from the application's configuration.
//
// # Connect
//
// Connect selects the dialector from Config.Driver, applies pool settings and
// verifies the connection with a bounded ping. SQLite connections are limited
// to one open connection so in-memory databases are shared by all callers.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for both dialects. The integrity
// feature uses it to verify that the reconciliation tables were migrated.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "alignment_records")
package database
