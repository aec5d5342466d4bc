package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/finchwatch/finch/internal/common"
	"github.com/finchwatch/finch/internal/config"
	"github.com/finchwatch/finch/internal/service"
	"github.com/finchwatch/finch/internal/storage"
)

// openStorage opens the configured SQLite database. Callers own Close.
func openStorage() (service.Storage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError("failed to open database", err)
	}
	return store, nil
}
