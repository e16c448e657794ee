package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"elmora-backend/internal/config"
)

var dbConn *gorm.DB

// InitDBFromConfig opens the Postgres connection and applies pool settings.
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey
// and duplicate submissions can be told apart from other write failures.
func InitDBFromConfig(cfg *config.APIConfig) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.Username, cfg.DB.Password.Resolve(),
		cfg.DB.Name, cfg.DB.SSLMode, cfg.Context.TimeZone,
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		log.Fatalf("failed to access underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DB.Pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.Pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.Pool.ConnMaxLifetime) * time.Second)

	dbConn = conn
}

// GetDB returns the shared connection.
func GetDB() *gorm.DB {
	return dbConn
}
