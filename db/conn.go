// Package db contains things related to the database connection
package db

import (
	"fmt"

	"dreamcatcher/dream-api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the database configured under database.driver and runs
// the automigrations for all models
func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	dsn := viper.GetString("database.dsn")

	switch viper.GetString("database.driver") {
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		// Foreign keys are off by default in SQLite. Without them the
		// user -> dreams cascade doesn't fire
		dialector = sqlite.Open(dsn + "?_foreign_keys=on")
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Dream{}, model.Setting{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
