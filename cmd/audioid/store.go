package main

import (
	"fmt"

	"audioid/configs"
	"audioid/internal/store"
	"audioid/internal/store/memory"
	"audioid/internal/store/mysql"
	"audioid/internal/store/postgres"
)

// openStore constructs the Store backend named by cfg.Database.Type.
func openStore(cfg configs.Database) (store.Store, error) {
	switch cfg.Type {
	case "mysql":
		return mysql.Open(cfg.DSN)
	case "postgres":
		return postgres.Open(cfg.DSN)
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %q", cfg.Type)
	}
}
