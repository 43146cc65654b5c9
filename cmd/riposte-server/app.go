package main

import (
	"github.com/veldt-games/riposte/internal/config"
	"github.com/veldt-games/riposte/internal/logging"
	"github.com/veldt-games/riposte/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid riposte configuration", err, logging.Fields{"config_path": path, "hint": "create a riposte_config.json with 'card_list' and 'enemy_card_list' arrays plus an optional 'battle' block and server.address"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
