package core

import (
	"fmt"
	"os"

	"marketcore/internal/infra/persistence/memory"
	"marketcore/internal/infra/persistence/postgres"
	"marketcore/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only, authoritative
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite snapshot file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL snapshot mirror
)

// OpenPersistentStore selects a backend using environment variables.
// Defaults to memory when unset.
//
//	MARKETCORE_STORAGE_DRIVER: memory|sqlite|postgres (default memory)
//	MARKETCORE_SQLITE_PATH: path to sqlite file (default ./marketcore.db)
//	MARKETCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenPersistentStore() (PersistentStore, error) {
	driver := os.Getenv("MARKETCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageMemory)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		path := os.Getenv("MARKETCORE_SQLITE_PATH")
		return sqlite.NewStore(path)
	case StoragePostgres:
		dsn := os.Getenv("MARKETCORE_POSTGRES_DSN")
		return postgres.NewStore(dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
