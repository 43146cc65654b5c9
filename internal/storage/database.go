package storage

import (
	"github.com/veldt-games/riposte/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database and keeps the schema current via
// AutoMigrate. The battle state itself is a JSON column, so schema changes
// are rare and limited to the lookup columns.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.BattleRecord{}, &game.User{}); err != nil {
		return nil, err
	}
	return db, nil
}
