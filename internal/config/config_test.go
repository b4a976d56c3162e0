package config

import (
	"testing"
	"time"

	"bookstore-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_KEY", "test-signing-key")
	t.Setenv("JWT_ISSUER", "bookstore-api")
}

func TestParse_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppMode)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 300, cfg.JWT.AccessTokenMins)
	assert.Equal(t, 5*time.Hour, cfg.TokenValidity())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.UploadsDir)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
	assert.Empty(t, cfg.Jobs.AssetAuditSchedule)
}

func TestParse_MissingSigningKey(t *testing.T) {
	t.Setenv("JWT_KEY", "")
	t.Setenv("JWT_ISSUER", "bookstore-api")

	_, err := Parse()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParse_MissingIssuer(t *testing.T) {
	t.Setenv("JWT_KEY", "k")
	t.Setenv("JWT_ISSUER", "")

	_, err := Parse()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParse_ModePrefixSelectsDatabase(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_MODE", "prod")
	t.Setenv("DEV_DB_HOST", "dev-host")
	t.Setenv("PROD_DB_HOST", "prod-host")
	t.Setenv("PROD_DB_DRIVER", "postgres")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "prod-host", cfg.Database.Host)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestParse_InvalidMode(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_MODE", "staging")

	_, err := Parse()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParse_TokenValidityOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_MINUTES", "5")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.TokenValidity())

	t.Setenv("ACCESS_TOKEN_MINUTES", "0")
	_, err = Parse()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParse_S3RequiresBucket(t *testing.T) {
	setRequired(t)
	t.Setenv("ASSET_BACKEND", "s3")

	_, err := Parse()
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	t.Setenv("S3_BUCKET", "covers")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "covers", cfg.Storage.S3Bucket)
}
