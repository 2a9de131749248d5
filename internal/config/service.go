package config

import (
	"fmt"
	"time"
)

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// Token store drivers
const (
	TokenStoreDatabase = "database"
	TokenStoreRedis    = "redis"
	TokenStoreMemory   = "memory"
)

type TokenStoreConfig struct {
	Driver string `yaml:"driver"`
}

type RedisConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`

	// PublishEvents announces finished import runs on EventsChannel
	PublishEvents bool   `yaml:"publish_events"`
	EventsChannel string `yaml:"events_channel"`
}

// Addr returns host:port for the redis client
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Media drivers
const (
	MediaDriverDatabase = "database"
	MediaDriverS3       = "s3"
)

type MediaConfig struct {
	Driver          string        `yaml:"driver"`
	KeyPrefix       string        `yaml:"key_prefix"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	JPEGQuality     int           `yaml:"jpeg_quality"`
	S3              S3Config      `yaml:"s3"`
}

type S3Config struct {
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}
