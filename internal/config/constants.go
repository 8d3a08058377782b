package config

// Port configuration constants
const (
	// DefaultPort is used when PORT is unset or empty
	DefaultPort = 3000

	// MaxPort is the highest valid TCP port
	MaxPort = 65535

	// DefaultConfigFile is read when present and DEMO_APP_CONFIG is unset
	DefaultConfigFile = "config.toml"
)

// Environment variable names
const (
	EnvPort       = "PORT"
	EnvHost       = "HOST"
	EnvConfigFile = "DEMO_APP_CONFIG"
	EnvMode       = "DEMO_APP_ENV"
)
