package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "3306", User: "book", Password: "secret", DBName: "store"}

	assert.Equal(t, "book:secret@tcp(db:3306)/store?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true", buildMySQLDSN(d))
	assert.Equal(t, "host=db port=3306 user=book password=secret dbname=store sslmode=disable", buildPostgresDSN(d))
}

func TestDialectorFor(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		dl, err := dialectorFor(DatabaseConfig{Driver: driver, DBName: "x"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, dl.Name())
	}

	_, err := dialectorFor(DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestConnectDatabase_SQLite(t *testing.T) {
	cfg := &Config{AppMode: "prod", Database: DatabaseConfig{Driver: "sqlite", DBName: "file::memory:"}}

	db, err := ConnectDatabase(cfg)
	require.NoError(t, err)
	defer CloseDatabase(db)

	assert.NoError(t, HealthCheck(db))
	assert.Error(t, HealthCheck(nil))
}
