package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for a generation run
type Config struct {
	// Spec is the OpenAPI document, a file path or HTTP(S) URL
	Spec string `yaml:"spec"`
	// OutDir is the root output directory
	OutDir string `yaml:"outDir"`
	// TypesDir is the subdirectory for type declaration files (default "types")
	TypesDir string `yaml:"typesDir"`
	// Routes toggles route/controller boilerplate generation
	Routes bool `yaml:"routes"`
	// MiddlewarePolicy is an optional path to a middleware selection policy file
	MiddlewarePolicy string `yaml:"middlewarePolicy"`
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Spec == "" {
		return nil, errors.New("config.spec is required")
	}
	if cfg.OutDir == "" {
		return nil, errors.New("config.outDir is required")
	}
	if cfg.TypesDir == "" {
		cfg.TypesDir = "types"
	}
	if !filepath.IsAbs(cfg.OutDir) {
		abs, _ := filepath.Abs(cfg.OutDir)
		cfg.OutDir = abs
	}
	if cfg.MiddlewarePolicy != "" && !filepath.IsAbs(cfg.MiddlewarePolicy) {
		abs, _ := filepath.Abs(cfg.MiddlewarePolicy)
		cfg.MiddlewarePolicy = abs
	}
	// Do not absolutize when spec is an HTTP(S) URL
	if u, err := url.Parse(cfg.Spec); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		// keep as-is
	} else if !filepath.IsAbs(cfg.Spec) {
		abs, _ := filepath.Abs(cfg.Spec)
		cfg.Spec = abs
	}
	return &cfg, nil
}
