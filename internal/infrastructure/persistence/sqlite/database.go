// Package sqlite provides the SQLite database used for local
// development and repository tests. Schema comes from AutoMigrate
// here; production uses the SQL migrations instead.
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	gormdb "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/infrastructure/persistence/gorm"
)

// Open creates a SQLite database at path (":memory:" for tests) with
// the full schema migrated.
func Open(path string) (*gormdb.DB, error) {
	db, err := gormdb.Open(sqlite.Open(path), &gormdb.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&gorm.UserModel{},
		&gorm.CategoryModel{},
		&gorm.RecipeModel{},
		&gorm.FavoriteModel{},
		&gorm.ConversationModel{},
		&gorm.MessageModel{},
		&gorm.AssistantConfigModel{},
	); err != nil {
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}

	return db, nil
}
