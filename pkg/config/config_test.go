package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, "0.19", cfg.Store.VATRate.String())
	assert.Equal(t, "America/Santiago", cfg.App.TimeZone)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("STORE_VAT_RATE", "0.1")
	t.Setenv("HTTP_PORT", "9090")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.1", cfg.Store.VATRate.String())
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_InvalidVAT(t *testing.T) {
	t.Setenv("STORE_VAT_RATE", "1.5")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "petmaison", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/petmaison?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLocation_Fallback(t *testing.T) {
	assert.Equal(t, "UTC", AppConfig{TimeZone: "No/Existe"}.Location().String())
}
