package config

import (
	"fmt"
	"os"
	"strings"
)

type StoreDriver string

const (
	MemoryStore   StoreDriver = "memory"
	SqliteStore   StoreDriver = "sqlite"
	PostgresStore StoreDriver = "postgres"
)

type Store struct {
	Driver     StoreDriver
	SqlitePath string
}

func NewStore() (*Store, error) {
	driver := MemoryStore
	if s, ok := os.LookupEnv("STORE_DRIVER"); ok && s != "" {
		driver = StoreDriver(strings.ToLower(s))
	}
	switch driver {
	case MemoryStore, SqliteStore, PostgresStore:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}

	sqlitePath, ok := os.LookupEnv("SQLITE_PATH")
	if !ok {
		sqlitePath = "sweeper.db"
	}

	store := &Store{
		Driver:     driver,
		SqlitePath: sqlitePath,
	}

	return store, nil
}
