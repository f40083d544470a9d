// Package database opens the GORM connection selected by configuration.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"catalog/internal/config"
	"catalog/internal/models"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// zapWriter routes GORM's logger through the global zap logger.
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	zap.S().Infof(format, args...)
}

func newGormLogger() logger.Interface {
	return logger.New(zapWriter{}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// sqliteDriverName is a go-sqlite3 driver whose lower() folds Unicode, so
// case-insensitive name search behaves the same as on postgres.
const sqliteDriverName = "sqlite3_unicode"

var registerSQLite sync.Once

func sqliteDialector(dsn string) gorm.Dialector {
	registerSQLite.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", strings.ToLower, true)
			},
		})
	})
	return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn})
}

// Open connects to the sqlite or postgres database named by driver and dsn.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqliteDialector(dsn)
	default:
		return nil, fmt.Errorf("driver %q has no SQL database", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

// Migrate creates or alters the products table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
