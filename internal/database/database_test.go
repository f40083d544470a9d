package database_test

import (
	"testing"

	"catalog/internal/config"
	"catalog/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate_SQLite(t *testing.T) {
	db, err := database.Open(config.DriverSQLite, "file:database_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Migrate(db))
	assert.True(t, db.Migrator().HasTable("products"))
	assert.True(t, db.Migrator().HasColumn("products", "seller_name"))
}

func TestOpen_RejectsMemoryDriver(t *testing.T) {
	_, err := database.Open(config.DriverMemory, "")
	assert.Error(t, err)
}
