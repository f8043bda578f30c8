package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config controls the server behavior.
// It is intentionally small: one listener and a handful of protocol knobs.
type Config struct {
	// Listen address, e.g. ":3000" or "127.0.0.1:3000".
	Listen string `json:"listen"`

	// RootDir is the directory request targets are resolved against.
	// Targets are used as given, with no normalization or sandboxing.
	RootDir string `json:"root_dir"`

	// WelcomePath is the redirect target served when a GET/HEAD request
	// carries an empty path.
	WelcomePath string `json:"welcome_path"`

	// IdleTimeoutMs bounds how long a read waits for further input before
	// the stream is treated as exhausted. For POST/PUT bodies without a
	// Content-Length header this timeout is the only end-of-body signal.
	IdleTimeoutMs int `json:"idle_timeout_ms"`

	// ServerName is the value of the fixed Server response header.
	ServerName string `json:"server_name"`

	// LogRequests controls the per-request console log and the in-memory
	// request log.
	LogRequests bool `json:"log_requests"`

	// LogBuffer is the capacity of the in-memory request log.
	LogBuffer int `json:"log_buffer"`
}

func Default() Config {
	return Config{
		Listen:        ":3000",
		RootDir:       ".",
		WelcomePath:   "/bienvenue.html",
		IdleTimeoutMs: 100,
		ServerName:    "Bot",
		LogRequests:   true,
		LogBuffer:     256,
	}
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Listen == "" {
		c.Listen = ":3000"
	}
	if c.RootDir == "" {
		c.RootDir = "."
	}
	if c.WelcomePath == "" {
		c.WelcomePath = "/bienvenue.html"
	}
	if !strings.HasPrefix(c.WelcomePath, "/") {
		return fmt.Errorf("welcome_path must start with '/'")
	}
	if c.IdleTimeoutMs <= 0 {
		c.IdleTimeoutMs = 100
	}
	if c.IdleTimeoutMs > 60_000 {
		return fmt.Errorf("idle_timeout_ms (%d) must be <= 60000", c.IdleTimeoutMs)
	}
	if c.ServerName == "" {
		c.ServerName = "Bot"
	}
	if strings.ContainsAny(c.ServerName, "\r\n") {
		return fmt.Errorf("server_name must not contain line breaks")
	}
	if c.LogBuffer <= 0 {
		c.LogBuffer = 256
	}
	return nil
}

// IdleTimeout returns IdleTimeoutMs as a duration.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMs) * time.Millisecond
}
