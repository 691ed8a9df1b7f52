package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/config"
)

func TestOpen_SQLiteMigrates(t *testing.T) {
	gormDB, err := Open(config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(gormDB))

	assert.True(t, gormDB.Migrator().HasTable("users"))
	assert.True(t, gormDB.Migrator().HasTable("sessions"))
	assert.True(t, gormDB.Migrator().HasColumn("users", "profile_picture"))
	assert.True(t, gormDB.Migrator().HasColumn("users", "password"))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "dsn")
	assert.Error(t, err)
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)", withForeignKeys("a.db"))
	assert.Equal(t, "a.db?mode=rwc&_pragma=foreign_keys(1)", withForeignKeys("a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(0)", withForeignKeys("a.db?_pragma=foreign_keys(0)"))
}
