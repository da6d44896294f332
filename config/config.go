// Package config resolves emulator settings from defaults, an optional YAML file
// and the environment. Command line overrides are applied by the cli package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvSpecsPath = "API_SPECS_PATH"
	EnvServices  = "EMULATOR_SERVICES"
	EnvAddr      = "EMULATOR_ADDR"
	EnvLogLevel  = "EMULATOR_LOG"
	EnvAuthToken = "MOCK_AUTH_TOKEN"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	SpecsPath   string   `yaml:"specs_path"`
	Services    []string `yaml:"services"`
	Addr        string   `yaml:"addr"`
	LogLevel    string   `yaml:"log_level"`
	AuthToken   string   `yaml:"auth_token"`
	MetricsPath string   `yaml:"metrics_path"`
	OpenAPIPath string   `yaml:"openapi_path"`
}

func Default() Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Config{
		SpecsPath:   filepath.Join(cwd, "azure-rest-api-specs", "specification"),
		Services:    []string{"compute", "networking", "storage"},
		Addr:        ":8000",
		LogLevel:    "info",
		AuthToken:   "mock-token",
		MetricsPath: "/metrics",
		OpenAPIPath: "/_emulator/openapi.json",
	}
}

// LoadDotEnv loads a .env file from the working directory when there is one.
func LoadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", "err", err)
	}
}

// Load builds a configuration from defaults, the YAML file at path (skipped when
// empty) and the process environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		if err := c.LoadFile(path); err != nil {
			return c, err
		}
	}
	c.ApplyEnv(os.LookupEnv)
	return c, nil
}

// LoadFile overlays the values set in a YAML file. Unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	return nil
}

func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvSpecsPath); ok {
		c.SpecsPath = v
	}
	if v, ok := lookup(EnvServices); ok {
		c.Services = SplitList(v)
	}
	if v, ok := lookup(EnvAddr); ok {
		c.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvAuthToken); ok {
		c.AuthToken = v
	}
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	res := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}

func (c *Config) Normalize() {
	c.SpecsPath = strings.TrimSpace(c.SpecsPath)
	c.Addr = strings.TrimSpace(c.Addr)
	c.LogLevel = strings.TrimSpace(c.LogLevel)
	c.MetricsPath = strings.TrimSpace(c.MetricsPath)
	c.OpenAPIPath = strings.TrimSpace(c.OpenAPIPath)

	seen := make(map[string]struct{}, len(c.Services))
	services := make([]string, 0, len(c.Services))
	for _, s := range c.Services {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		services = append(services, s)
	}
	c.Services = services
}

func (c *Config) Validate() error {
	if c.SpecsPath == "" {
		return fmt.Errorf("%w: specs path is empty", ErrInvalid)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: log level %q: %v", ErrInvalid, c.LogLevel, err)
	}
	for name, p := range map[string]string{"metrics path": c.MetricsPath, "openapi path": c.OpenAPIPath} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: %s %q must start with /", ErrInvalid, name, p)
		}
	}
	if c.MetricsPath == c.OpenAPIPath {
		return fmt.Errorf("%w: metrics and openapi paths are both %q", ErrInvalid, c.MetricsPath)
	}
	return nil
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}
