package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/backend/config"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{URL: "sqlite://:memory:", MaxOpenConns: 10})
	require.NoError(t, err)
	defer database.Close()

	assert.Equal(t, "sqlite", database.Dialect())
	assert.True(t, database.HealthCheck())

	type probe struct {
		ID   uint
		Name string
	}
	require.NoError(t, database.AutoMigrate(&probe{}))
	assert.True(t, database.DB().Migrator().HasTable(&probe{}))
}

func TestNewPostgresConnection_InvalidURL(t *testing.T) {
	_, err := NewPostgresConnection(&config.DatabaseConfig{URL: "postgres://user:pa ss@%zz/db"})
	assert.Error(t, err)
}
