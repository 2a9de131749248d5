// Package config resolves settings that may be overridden by command line flags
// or prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Overrides gives read access to values set through flags or the environment
type Overrides interface {
	IsSet(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetDuration(key string) time.Duration
}

// ViperOverrides implements Overrides with viper
type ViperOverrides struct {
	v *viper.Viper
}

// NewOverrides reads <PREFIX>_<SECTION>_<KEY> environment variables, so
// "vendor.api_key" is looked up as CATALOG_VENDOR_API_KEY for prefix "catalog".
// Only keys declared with Watch or BindFlag are visible.
func NewOverrides(envPrefix string) *ViperOverrides {
	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(envPrefix))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &ViperOverrides{v: v}
}

// Watch declares keys that may be set from the environment
func (o *ViperOverrides) Watch(keys ...string) error {
	for _, key := range keys {
		if err := o.v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// BindFlag lets a command line flag override key; the flag wins over the environment
func (o *ViperOverrides) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for %s", key)
	}
	if err := o.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag for %s: %w", key, err)
	}
	return nil
}

// Set forces a value; mostly useful in tests
func (o *ViperOverrides) Set(key string, value interface{}) {
	o.v.Set(key, value)
}

// IsSet reports whether key has a value from a changed flag, the environment or Set
func (o *ViperOverrides) IsSet(key string) bool {
	return o.v.IsSet(key)
}

func (o *ViperOverrides) GetString(key string) string {
	return o.v.GetString(key)
}

func (o *ViperOverrides) GetInt(key string) int {
	return o.v.GetInt(key)
}

func (o *ViperOverrides) GetBool(key string) bool {
	return o.v.GetBool(key)
}

func (o *ViperOverrides) GetDuration(key string) time.Duration {
	return o.v.GetDuration(key)
}
