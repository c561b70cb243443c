package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "stock-ledger", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Store.AutoMigrate)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.JWT.Secret)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "SQLite")
	v.Set("SQLITE_PATH", ":memory:")
	v.Set("DB_AUTO_MIGRATE", "false")
	v.Set("HTTP_PORT", "9090")
	v.Set("LOG_LEVEL", "DEBUG")
	v.Set("DB_MAX_CONNS", "4")
	v.Set("DB_MIN_CONNS", "2")
	v.Set("DB_MAX_CONN_IDLE_MINUTES", "5")
	v.Set("DB_FORCE_IPV4", "true")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Store.SQLitePath)
	assert.False(t, cfg.Store.AutoMigrate)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.Equal(t, 5*time.Minute, cfg.DB.MaxConnIdleTime)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestFromViper_PoolInvalido(t *testing.T) {
	v := viper.New()
	v.Set("DB_MAX_CONNS", "2")
	v.Set("DB_MIN_CONNS", "5")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("DB_MAX_CONNS", "0")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/ledger?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
