package database

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// OpenDB creates and verifies the connection pool. It is the explicit connect
// phase run once at startup; everything afterwards only uses the returned pool.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	// 1. Open a new connection pool.
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// 2. Configure the connection pool settings.
	switch driver {
	case DriverSQLite:
		// A single connection keeps in-memory databases shared and serializes writers.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// 3. Ping the database to verify the connection.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Printf("Error connecting to %s database: %v", driver, err)
		db.Close()
		return nil, err
	}

	log.Printf("Database connection pool established successfully (%s)", driver)
	return db, nil
}

// Migrate creates the tables used by the service if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts, ok := schema[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
	}
	return nil
}
