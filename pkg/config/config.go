// Package config validates the configuration surface the pipeline
// consumes. Invalid values fall back to documented safe defaults; the
// process keeps running rather than aborting.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8080
)

// Config is the validated configuration surface.
type Config struct {
	HTTPHost   string
	HTTPPort   int
	LogPath    string
	PlayerName string
	Debug      bool
}

// Validate returns a copy with every field coerced into its safe range.
func (c Config) Validate() Config {
	c.HTTPHost = ValidateHost(c.HTTPHost)
	c.HTTPPort = ValidatePort(c.HTTPPort, "http port")
	c.LogPath = ValidatePath(c.LogPath)
	return c
}

// ValidatePort keeps a port within 1024-65535, falling back to the
// default otherwise.
func ValidatePort(port int, name string) int {
	if port < 1024 || port > 65535 {
		log.Printf("[Config] %s out of range (%d), using %d", name, port, DefaultPort)
		return DefaultPort
	}
	return port
}

// ValidateHost restricts the bind host to loopback or any-local.
func ValidateHost(host string) string {
	switch host {
	case "127.0.0.1", "localhost", "0.0.0.0":
		return host
	}
	log.Printf("[Config] host %q not allowed, using %s", host, DefaultHost)
	return DefaultHost
}

// ValidatePath normalizes the game log path. Traversal sequences and
// non-.log extensions fall back to the platform default. A directory is
// taken to contain Game.log.
func ValidatePath(path string) string {
	if path == "" {
		return DefaultLogPath()
	}

	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, "Game.log")
	}

	resolved, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		log.Printf("[Config] cannot resolve log path %q: %v", path, err)
		return DefaultLogPath()
	}
	if strings.Contains(resolved, "..") {
		log.Printf("[Config] suspicious log path %q, using default", path)
		return DefaultLogPath()
	}
	if !strings.EqualFold(filepath.Ext(resolved), ".log") {
		log.Printf("[Config] log path extension %q invalid, using default", filepath.Ext(resolved))
		return DefaultLogPath()
	}
	return resolved
}

// DefaultLogPath returns the platform default Game.log location.
func DefaultLogPath() string {
	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = home
	}
	return filepath.Join(base, "StarCitizen", "Game.log")
}
