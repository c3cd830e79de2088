// database/bootstrap.go
package database

import (
	"errors"
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kisan/entities"
)

// Models is every table owned by the SQLite store.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Presence{},
		&entities.Farm{},
		&entities.Expense{},
		&entities.Income{},
		&entities.Task{},
		&entities.Crop{},
		&entities.PestDisease{},
		&entities.MarketPrice{},
		&entities.Scheme{},
		&entities.Message{},
	}
}

// OpenSQLite opens path and migrates the schema. Unique-index violations
// surface as gorm.ErrDuplicatedKey.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsDuplicate reports a unique-constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
