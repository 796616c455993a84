// Package database opens GORM connections with retry, pooling, a zerolog
// query logger and health checks.
//
// Only SQLite is wired in as a driver. The connection is used by the
// reference user store and by cmd/authserver:
//
//	db, err := database.Open(ctx, database.Config{DSN: "auth.db"}, log)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
// # Subpackages
//
//   - migration: versioned SQL migrations using golang-migrate
package database
