package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":          "postgres://localhost/kitabghor",
		"REDIS_URL":             "redis://localhost:6379/0",
		"SHIPPING_DEFAULT_RATE": "",
		"PORT":                  "",
		"LOCK_TTL":              "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "BD", cfg.ShippingCountry)
	require.Equal(t, "BDT", cfg.CurrencyCode)
	require.Nil(t, cfg.ShippingDefaultRate)
	require.Equal(t, 5*time.Second, cfg.LockTTL)
	require.Equal(t, 5, cfg.LowStockThreshold)
}

func TestLoadDefaultShippingRate(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":          "postgres://localhost/kitabghor",
		"REDIS_URL":             "redis://localhost:6379/0",
		"SHIPPING_DEFAULT_RATE": "120.50",
		"PORT":                  ":9090",
	})
	require.NoError(t, err)
	require.NotNil(t, cfg.ShippingDefaultRate)
	require.Equal(t, "120.5", cfg.ShippingDefaultRate.String())
	require.Equal(t, ":9090", cfg.HTTPAddr())
}

func TestLoadRejectsNegativeDefaultRate(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL":          "postgres://localhost/kitabghor",
		"REDIS_URL":             "redis://localhost:6379/0",
		"SHIPPING_DEFAULT_RATE": "-1",
	})
	require.Error(t, err)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL": "",
		"REDIS_URL":    "redis://localhost:6379/0",
	})
	require.EqualError(t, err, "DATABASE_URL is required")
}
