// Package main is the entry point for the demo-app HTTP server
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"demo-app/internal/config"
	"demo-app/internal/logging"
	"demo-app/internal/server"
	"demo-app/internal/telemetry"
	"demo-app/internal/version"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func isVersionArg(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "--version", "-version", "version":
		return true
	}
	return false
}

// run starts the server and blocks until ctx is cancelled or the server
// fails. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Load .env file if it exists (for development)
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file loaded: %v", err)
	}

	versionInfo := version.Get()
	if isVersionArg(args) {
		fmt.Fprint(stdout, versionInfo.String())
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	if cfg.IsDevelopment() || os.Getenv("DEBUG") == "true" {
		logging.SetDebug(true)
		if err := logging.Initialize("./logs"); err != nil {
			logging.Warning("Failed to initialize file logging: %v", err)
		} else {
			defer logging.Close() //nolint:errcheck // best effort on exit
		}
	}
	logging.Debug("Configuration: %s", cfg)

	shutdownTelemetry, err := telemetry.InitializeFromEnv(ctx, versionInfo.Version)
	if err != nil {
		logging.Warning("Failed to initialize telemetry: %v", err)
	} else {
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdownTelemetry(flushCtx); err != nil {
				logging.Error("Error shutting down telemetry: %v", err)
			}
		}()
	}

	srv, err := server.New(cfg, versionInfo)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create server: %v\n", err)
		return 1
	}
	srv.SetOutput(stdout)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(stderr, "Shutdown error: %v\n", err)
		return 1
	}
	if err := <-errCh; err != nil {
		fmt.Fprintf(stderr, "Server error: %v\n", err)
		return 1
	}
	return 0
}
