package database

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var memSeq atomic.Int64

// OpenSQLite opens (creating if needed) a migrated SQLite database file for
// local tooling. Production runs on PostgreSQL.
func OpenSQLite(path, appEnv string) (*gorm.DB, error) {
	return openSQLite(fmt.Sprintf("file:%s?_fk=1", path), appEnv)
}

// OpenMemory returns a migrated, private in-memory SQLite database.
func OpenMemory() (*gorm.DB, error) {
	return openSQLite(fmt.Sprintf("file:ecotrack_mem_%d?mode=memory&cache=shared&_fk=1", memSeq.Add(1)), "test")
}

func openSQLite(dsn, appEnv string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(dsn), GormConfig(appEnv))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	// One connection keeps a shared-cache memory database alive and
	// serializes SQLite writers.
	sqlDB.SetMaxOpenConns(1)

	if err := RunMigrations(conn); err != nil {
		return nil, err
	}
	return conn, nil
}
