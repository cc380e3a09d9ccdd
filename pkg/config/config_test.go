package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "AUTH_MODE", "STORE_TIMEOUT", "DB_MAX_OPEN_CONNS", "MONGO_URI"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "jwt", cfg.AuthMode)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Empty(t, cfg.MongoURI)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AUTH_MODE", "firebase")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "firebase", cfg.AuthMode)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 40, cfg.DBMaxOpenConns)
	assert.Equal(t, 5, cfg.DBMaxIdleConns)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
}
