package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPort is returned when a port is not an integer in 0-65535
var ErrInvalidPort = errors.New("invalid port")

// Config holds all configuration settings for the application
type Config struct {
	// Port is the TCP port the web server listens on. 0 lets the OS pick one.
	Port int `toml:"port" yaml:"port"`

	// Host is the interface to bind. Empty means all interfaces.
	Host string `toml:"host" yaml:"host"`

	// Environment is "production" or "development"
	Environment string `toml:"environment" yaml:"environment"`
}

// defaultConfig returns the configuration used when nothing is overridden
func defaultConfig() *Config {
	return &Config{
		Port:        DefaultPort,
		Host:        "",
		Environment: "production",
	}
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := defaultConfig()

	configPath := os.Getenv(EnvConfigFile)
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFile
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := decodeFile(configPath, config); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	// Override with environment variables if set
	if port := os.Getenv(EnvPort); port != "" {
		p, err := ParsePort(port)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", EnvPort, err)
		}
		config.Port = p
	}

	if host := os.Getenv(EnvHost); host != "" {
		config.Host = host
	}

	if mode := os.Getenv(EnvMode); mode != "" {
		config.Environment = mode
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// decodeFile picks a decoder based on the file extension
func decodeFile(path string, config *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, config); err != nil {
			return fmt.Errorf("failed to decode config file: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to decode config file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	return nil
}

// ParsePort parses a decimal port number in the range 0-65535
func ParsePort(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPort, s)
	}
	if p < 0 || p > MaxPort {
		return 0, fmt.Errorf("%w: %d out of range 0-%d", ErrInvalidPort, p, MaxPort)
	}
	return p, nil
}

// Validate checks the configuration for values the server cannot use
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > MaxPort {
		return fmt.Errorf("%w: %d out of range 0-%d", ErrInvalidPort, c.Port, MaxPort)
	}
	return nil
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// ListenAddr returns the host:port pair passed to net.Listen
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Port: %d", c.Port))
	parts = append(parts, fmt.Sprintf("Host: %s", c.Host))
	parts = append(parts, fmt.Sprintf("Environment: %s", c.Environment))
	return strings.Join(parts, ", ")
}
