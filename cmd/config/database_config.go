package config

import (
	"fmt"
	"strings"

	"khadija-recipes/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ConnectDB() (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(), &gorm.Config{})
	if err != nil {
		log.Errorf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}

// Dialector picks the gorm driver named by DB_DRIVER.
func Dialector() gorm.Dialector {
	switch strings.ToLower(utils.GetConfig("DB_DRIVER")) {
	case "sqlite", "sqlite3":
		return sqlite.Open(fmt.Sprintf("%s?_foreign_keys=on", utils.GetConfig("SQLITE_PATH")))
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Europe/Zurich",
			utils.GetConfig("DB_HOST"),
			utils.GetConfig("DB_USER"),
			utils.GetConfig("DB_PASSWORD"),
			utils.GetConfig("DB_NAME"),
			utils.GetConfig("DB_PORT"),
		)
		return postgres.Open(dsn)
	}
}
