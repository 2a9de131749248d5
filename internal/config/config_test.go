package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	pkgConfig "github.com/wekeepgrowing/toptex-catalog-sync/pkg/config"
)

const sampleConfig = `
vendor:
  username: ${TEST_VENDOR_USER}
  password: secret
  api_key: key-123
  base_url: https://api.toptex.io
pricing:
  markup: "1.4"
database:
  driver: sqlite
  path: /tmp/catalog.db
schedule:
  import_interval: 6h
`

func TestParse_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("TEST_VENDOR_USER", "shop")

	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.Vendor.Username)
	assert.Equal(t, "es", cfg.Vendor.Locale)
	assert.Equal(t, "/v3/authenticate", cfg.Vendor.AuthPath)
	assert.Equal(t, "b2b_uniquement", cfg.Vendor.UsageRight)
	assert.Equal(t, 60*time.Minute, cfg.Vendor.TokenTTL)
	assert.True(t, cfg.Pricing.Markup.Equal(decimal.RequireFromString("1.4")))
	assert.Equal(t, "EUR", cfg.Pricing.Currency)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.DSN())
	assert.Equal(t, TokenStoreDatabase, cfg.TokenStore.Driver)
	assert.Equal(t, MediaDriverDatabase, cfg.Media.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 6*time.Hour, cfg.Schedule.ImportInterval)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	require.NoError(t, cfg.ValidateVendor())
}

func TestParse_InvalidMarkupFallsBack(t *testing.T) {
	cfg, err := Parse([]byte("pricing:\n  markup: \"-2\"\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Pricing.Markup.Equal(DefaultMarkup))
}

func TestValidateVendor_ListsEveryMissingField(t *testing.T) {
	cfg, err := Parse([]byte("vendor:\n  username: shop\n"))
	require.NoError(t, err)

	err = cfg.ValidateVendor()
	require.Error(t, err)
	assert.True(t, domainErrors.IsType(err, domainErrors.ErrTypeConfiguration))
	assert.Contains(t, err.Error(), "vendor.password")
	assert.Contains(t, err.Error(), "vendor.api_key")
	assert.Contains(t, err.Error(), "vendor.base_url")
	assert.NotContains(t, err.Error(), "vendor.username")
}

func TestApplyOverrides(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	o := pkgConfig.NewOverrides(EnvPrefix)
	o.Set("vendor.api_key", "from-flag")
	o.Set("pricing.markup", "2")
	o.Set("database.port", 6543)
	o.Set("redis.publish_events", true)
	o.Set("schedule.import_interval", "30m")
	o.Set("log.level", "debug")

	cfg.ApplyOverrides(o)

	assert.Equal(t, "from-flag", cfg.Vendor.APIKey)
	assert.Equal(t, "secret", cfg.Vendor.Password)
	assert.True(t, cfg.Pricing.Markup.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Redis.PublishEvents)
	assert.Equal(t, 30*time.Minute, cfg.Schedule.ImportInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyOverrides_FromEnvironment(t *testing.T) {
	t.Setenv("CATALOG_VENDOR_PASSWORD", "env-secret")
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	o := pkgConfig.NewOverrides(EnvPrefix)
	require.NoError(t, o.Watch(OverrideKeys...))
	cfg.ApplyOverrides(o)

	assert.Equal(t, "env-secret", cfg.Vendor.Password)
	assert.Equal(t, "key-123", cfg.Vendor.APIKey)
}
