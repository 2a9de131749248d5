package config

import (
	"github.com/shopspring/decimal"
	pkgConfig "github.com/wekeepgrowing/toptex-catalog-sync/pkg/config"
)

// EnvPrefix prefixes every environment override, e.g. CATALOG_VENDOR_USERNAME
const EnvPrefix = "catalog"

// OverrideKeys lists the settings that flags and the environment may replace
var OverrideKeys = []string{
	"vendor.username",
	"vendor.password",
	"vendor.api_key",
	"vendor.base_url",
	"vendor.locale",
	"vendor.usage_right",
	"pricing.markup",
	"pricing.currency",
	"database.driver",
	"database.host",
	"database.port",
	"database.name",
	"database.user",
	"database.password",
	"database.path",
	"token_store.driver",
	"redis.host",
	"redis.port",
	"redis.password",
	"redis.publish_events",
	"media.driver",
	"media.s3.bucket",
	"media.s3.region",
	"server.http.port",
	"server.jwt_secret",
	"schedule.import_interval",
	"log.level",
	"log.format",
}

// ApplyOverrides copies every set override onto the configuration
func (c *Config) ApplyOverrides(o pkgConfig.Overrides) {
	str := func(key string, dst *string) {
		if o.IsSet(key) {
			*dst = o.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if o.IsSet(key) {
			*dst = o.GetInt(key)
		}
	}

	str("vendor.username", &c.Vendor.Username)
	str("vendor.password", &c.Vendor.Password)
	str("vendor.api_key", &c.Vendor.APIKey)
	str("vendor.base_url", &c.Vendor.BaseURL)
	str("vendor.locale", &c.Vendor.Locale)
	str("vendor.usage_right", &c.Vendor.UsageRight)

	if o.IsSet("pricing.markup") {
		if m, err := decimal.NewFromString(o.GetString("pricing.markup")); err == nil && m.IsPositive() {
			c.Pricing.RawMarkup = m.String()
			c.Pricing.Markup = m
		}
	}
	str("pricing.currency", &c.Pricing.Currency)

	str("database.driver", &c.Database.Driver)
	str("database.host", &c.Database.Host)
	num("database.port", &c.Database.Port)
	str("database.name", &c.Database.Name)
	str("database.user", &c.Database.User)
	str("database.password", &c.Database.Password)
	str("database.path", &c.Database.Path)

	str("token_store.driver", &c.TokenStore.Driver)
	str("redis.host", &c.Redis.Host)
	num("redis.port", &c.Redis.Port)
	str("redis.password", &c.Redis.Password)
	if o.IsSet("redis.publish_events") {
		c.Redis.PublishEvents = o.GetBool("redis.publish_events")
	}

	str("media.driver", &c.Media.Driver)
	str("media.s3.bucket", &c.Media.S3.Bucket)
	str("media.s3.region", &c.Media.S3.Region)

	num("server.http.port", &c.Server.HTTP.Port)
	str("server.jwt_secret", &c.Server.JWTSecret)

	if o.IsSet("schedule.import_interval") {
		c.Schedule.ImportInterval = o.GetDuration("schedule.import_interval")
	}

	str("log.level", &c.Log.Level)
	str("log.format", &c.Log.Format)
}
