package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	domainErrors "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when neither a flag nor CONFIG_PATH is set
const DefaultConfigPath = "./configs/catalog.yaml"

type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Vendor     VendorConfig     `yaml:"vendor"`
	Pricing    PricingConfig    `yaml:"pricing"`
	Database   DatabaseConfig   `yaml:"database"`
	TokenStore TokenStoreConfig `yaml:"token_store"`
	Redis      RedisConfig      `yaml:"redis"`
	Media      MediaConfig      `yaml:"media"`
	Server     ServerConfig     `yaml:"server"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Log        LogConfig        `yaml:"log"`
}

type ScheduleConfig struct {
	// ImportInterval re-runs the catalog import while serving; 0 disables it
	ImportInterval time.Duration `yaml:"import_interval"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	FilePath    string `yaml:"file_path"`
	Development bool   `yaml:"development"`
}

// LoadConfig reads the YAML file at path (or CONFIG_PATH, or the default),
// expands ${VAR} references and fills defaults.
func LoadConfig(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration content
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "catalog-sync"
	}
	c.Vendor.applyDefaults()
	c.Pricing.applyDefaults()
	c.Database.applyDefaults()
	if c.TokenStore.Driver == "" {
		c.TokenStore.Driver = TokenStoreDatabase
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "catalog-sync:vendor-token:"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.EventsChannel == "" {
		c.Redis.EventsChannel = "catalog-sync:imports"
	}
	if c.Media.Driver == "" {
		c.Media.Driver = MediaDriverDatabase
	}
	if c.Media.DownloadTimeout == 0 {
		c.Media.DownloadTimeout = 30 * time.Second
	}
	if c.Media.JPEGQuality == 0 {
		c.Media.JPEGQuality = 90
	}
	if c.Server.HTTP.Port == 0 {
		c.Server.HTTP.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

var validate = validator.New()

// ValidateVendor checks the vendor credentials before any network call is made.
// Every missing field is listed in a single ConfigurationError.
func (c *Config) ValidateVendor() error {
	return c.Vendor.Validate()
}

// Validate checks the vendor section
func (v VendorConfig) Validate() error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domainErrors.NewConfigurationError(err.Error())
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, vendorFieldNames[fe.StructField()])
	}
	return domainErrors.NewConfigurationError(
		fmt.Sprintf("vendor configuration is incomplete: missing or invalid %s", strings.Join(missing, ", ")))
}

var vendorFieldNames = map[string]string{
	"Username": "vendor.username",
	"Password": "vendor.password",
	"APIKey":   "vendor.api_key",
	"BaseURL":  "vendor.base_url",
}
