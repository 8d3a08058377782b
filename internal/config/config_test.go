package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// isolate points the config loader at an empty working directory and clears
// every variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{EnvPort, EnvHost, EnvConfigFile, EnvMode} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Host != "" {
		t.Errorf("Host = %q, want empty", cfg.Host)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if got := cfg.ListenAddr(); got != ":3000" {
		t.Errorf("ListenAddr() = %q, want :3000", got)
	}
}

func TestLoadEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		wantPort int
		wantAddr string
		wantDev  bool
		wantErr  bool
	}{
		{
			name:     "port from environment",
			envVars:  map[string]string{EnvPort: "4000"},
			wantPort: 4000,
			wantAddr: ":4000",
		},
		{
			name:     "empty port falls back to default",
			envVars:  map[string]string{EnvPort: ""},
			wantPort: DefaultPort,
			wantAddr: ":3000",
		},
		{
			name:     "ephemeral port",
			envVars:  map[string]string{EnvPort: "0"},
			wantPort: 0,
			wantAddr: ":0",
		},
		{
			name:     "host and port",
			envVars:  map[string]string{EnvPort: "8080", EnvHost: "127.0.0.1"},
			wantPort: 8080,
			wantAddr: "127.0.0.1:8080",
		},
		{
			name:     "ipv6 host",
			envVars:  map[string]string{EnvPort: "8080", EnvHost: "::1"},
			wantPort: 8080,
			wantAddr: "[::1]:8080",
		},
		{
			name:     "development mode",
			envVars:  map[string]string{EnvMode: "development"},
			wantPort: DefaultPort,
			wantAddr: ":3000",
			wantDev:  true,
		},
		{
			name:    "port not a number",
			envVars: map[string]string{EnvPort: "http"},
			wantErr: true,
		},
		{
			name:    "port too high",
			envVars: map[string]string{EnvPort: "65536"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPort) {
					t.Errorf("Load() error = %v, want ErrInvalidPort", err)
				}
				return
			}
			if cfg.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", cfg.Port, tt.wantPort)
			}
			if got := cfg.ListenAddr(); got != tt.wantAddr {
				t.Errorf("ListenAddr() = %q, want %q", got, tt.wantAddr)
			}
			if cfg.IsDevelopment() != tt.wantDev {
				t.Errorf("IsDevelopment() = %v, want %v", cfg.IsDevelopment(), tt.wantDev)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		explicit bool
		envPort  string
		wantPort int
		wantHost string
		wantErr  bool
	}{
		{
			name:     "default toml file",
			file:     DefaultConfigFile,
			content:  "port = 5000\nhost = \"127.0.0.1\"\n",
			wantPort: 5000,
			wantHost: "127.0.0.1",
		},
		{
			name:     "explicit yaml file",
			file:     "demo.yaml",
			content:  "port: 5001\nenvironment: development\n",
			explicit: true,
			wantPort: 5001,
		},
		{
			name:     "environment overrides file",
			file:     DefaultConfigFile,
			content:  "port = 5000\n",
			envPort:  "4000",
			wantPort: 4000,
		},
		{
			name:    "malformed toml",
			file:    DefaultConfigFile,
			content: "port = \n",
			wantErr: true,
		},
		{
			name:     "unsupported extension",
			file:     "demo.json",
			content:  "{}",
			explicit: true,
			wantErr:  true,
		},
		{
			name:     "port out of range in file",
			file:     "demo.yml",
			content:  "port: 70000\n",
			explicit: true,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}
			if tt.explicit {
				t.Setenv(EnvConfigFile, path)
			}
			if tt.envPort != "" {
				t.Setenv(EnvPort, tt.envPort)
			}

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", cfg.Port, tt.wantPort)
			}
			if cfg.Host != tt.wantHost {
				t.Errorf("Host = %q, want %q", cfg.Host, tt.wantHost)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvConfigFile, filepath.Join(dir, "missing.toml"))

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for missing explicit config file")
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		want    int
		wantErr bool
	}{
		{name: "valid port 80", port: "80", want: 80},
		{name: "valid port 3000", port: "3000", want: 3000},
		{name: "valid port 65535", port: "65535", want: 65535},
		{name: "port 0", port: "0", want: 0},
		{name: "surrounding whitespace", port: " 4000 ", want: 4000},
		{name: "invalid port 65536", port: "65536", wantErr: true},
		{name: "invalid port negative", port: "-1", wantErr: true},
		{name: "invalid port string", port: "http", wantErr: true},
		{name: "empty port", port: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePort(tt.port)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePort() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePort() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{Port: 4000, Host: "127.0.0.1", Environment: "development"}
	want := "Port: 4000, Host: 127.0.0.1, Environment: development"
	if got := cfg.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
