package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBase(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("RECONCILE_INTERVAL", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, StorageMongo, cfg.StorageDriver)
	assert.Equal(t, "recipes", cfg.MongoDB)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.ReconcileInterval)
}

func TestLoadMissingSecretFails(t *testing.T) {
	setBase(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadMongoRequiresURI(t *testing.T) {
	setBase(t)
	t.Setenv("MONGODB_URI", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")

	t.Setenv("STORAGE_DRIVER", "memory")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
}

func TestLoadRejectsBadValues(t *testing.T) {
	setBase(t)
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("BCRYPT_COST", "ten")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestPortFallsBackToPORT(t *testing.T) {
	setBase(t)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
}

func TestRateLimitClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestCacheKeyStrategyNormalised(t *testing.T) {
	t.Setenv("CACHE_KEY_STRATEGY", "whatever")
	t.Setenv("CACHE_METHODS", "get, head")

	cfg := LoadCacheConfig()
	assert.Equal(t, "path_query", cfg.KeyStrategy)
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
}

func TestCacheNamespaceTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "45s")
	t.Setenv("CACHE_NS_TTL", "ratings=5s, recipes=2m, broken, blogs=soon")

	cfg := LoadCacheConfig()
	assert.Equal(t, 5*time.Second, cfg.TTLFor("ratings"))
	assert.Equal(t, 2*time.Minute, cfg.TTLFor("recipes"))
	assert.Equal(t, 45*time.Second, cfg.TTLFor("blogs"))
	assert.Len(t, cfg.NamespaceTTL, 2)
}

func TestLoadRejectsBcryptCostOutOfRange(t *testing.T) {
	setBase(t)
	t.Setenv("BCRYPT_COST", "3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST 3 out of range")
}
