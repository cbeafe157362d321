package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePort(t *testing.T) {
	tests := []struct {
		name     string
		port     int
		expected int
	}{
		{"valid", 8080, 8080},
		{"upper bound", 65535, 65535},
		{"lower bound", 1024, 1024},
		{"privileged", 80, DefaultPort},
		{"zero", 0, DefaultPort},
		{"too high", 70000, DefaultPort},
		{"negative", -1, DefaultPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePort(tt.port, "port"); got != tt.expected {
				t.Errorf("ValidatePort(%d) = %d, want %d", tt.port, got, tt.expected)
			}
		})
	}
}

func TestValidateHost(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{"loopback", "127.0.0.1", "127.0.0.1"},
		{"localhost", "localhost", "localhost"},
		{"any local", "0.0.0.0", "0.0.0.0"},
		{"public address", "203.0.113.9", DefaultHost},
		{"hostname", "example.com", DefaultHost},
		{"empty", "", DefaultHost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateHost(tt.host); got != tt.expected {
				t.Errorf("ValidateHost(%q) = %q, want %q", tt.host, got, tt.expected)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "Game.log")
	if err := os.WriteFile(logFile, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if got := ValidatePath(logFile); got != logFile {
		t.Errorf("valid .log path should pass through, got %q", got)
	}

	// A directory is taken to contain Game.log.
	if got := ValidatePath(dir); got != logFile {
		t.Errorf("directory should resolve to its Game.log, got %q", got)
	}

	if got := ValidatePath(filepath.Join(dir, "notes.txt")); got != DefaultLogPath() {
		t.Errorf("non-.log extension should fall back to default, got %q", got)
	}

	if got := ValidatePath(""); got != DefaultLogPath() {
		t.Errorf("empty path should fall back to default, got %q", got)
	}
}

func TestValidateNeverAborts(t *testing.T) {
	cfg := Config{
		HTTPHost: "8.8.8.8",
		HTTPPort: 22,
		LogPath:  "/etc/passwd",
	}.Validate()

	if cfg.HTTPHost != DefaultHost || cfg.HTTPPort != DefaultPort || cfg.LogPath != DefaultLogPath() {
		t.Errorf("invalid config must coerce to safe defaults, got %+v", cfg)
	}
}
