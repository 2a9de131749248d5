package config

import "fmt"

// ServerConfig configures the admin API started by the serve command
type ServerConfig struct {
	HTTP HTTPConfig `yaml:"http"`
	// JWTSecret enables HMAC bearer authentication on /api/v1 when set
	JWTSecret string `yaml:"jwt_secret"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Address returns the listen address
func (h HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}
