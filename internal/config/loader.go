// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chidev/nestx/internal/log"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	ConsumedEnvKeys map[string]struct{} // Mechanical tracking of consumed keys
}

// NewLoader creates a new configuration loader. An empty path skips the file.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath:      configPath,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envList(key string, defaultVal []string) []string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseList(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults, then
// validates the result.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Default()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		mergeFileConfig(&cfg, fileCfg)
		logger := log.WithComponent("config")
		logger.Debug().
			Str(log.FieldEvent, "config.file_loaded").
			Str(log.FieldPath, l.configPath).
			Msg("configuration file loaded")
	}

	l.mergeEnvConfig(&cfg)
	canonicalize(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (l *Loader) loadFile(path string) (*FileConfig, error) {
	// #nosec G304 -- configuration file paths are provided by the operator via CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// Parse YAML with strict mode (unknown fields cause errors)
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func mergeFileConfig(cfg *AppConfig, fc *FileConfig) {
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if d := fc.Decode; d != nil {
		if d.MissingFields != "" {
			cfg.Decode.MissingFields = d.MissingFields
		}
		if d.UnknownFields != "" {
			cfg.Decode.UnknownFields = d.UnknownFields
		}
	}
	if v := fc.Validation; v != nil {
		if v.Enabled != nil {
			cfg.Validation.Enabled = *v.Enabled
		}
		if v.ExtNullable != nil {
			cfg.Validation.ExtNullable = *v.ExtNullable
		}
		if v.URLSchemes != nil {
			cfg.Validation.URLSchemes = v.URLSchemes
		}
	}
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.Decode.MissingFields = l.envString(EnvDecodeMissing, cfg.Decode.MissingFields)
	cfg.Decode.UnknownFields = l.envString(EnvDecodeUnknown, cfg.Decode.UnknownFields)
	cfg.Validation.Enabled = l.envBool(EnvValidationEnabled, cfg.Validation.Enabled)
	cfg.Validation.ExtNullable = l.envBool(EnvExtNullable, cfg.Validation.ExtNullable)
	cfg.Validation.URLSchemes = l.envList(EnvURLSchemes, cfg.Validation.URLSchemes)
}

// canonicalize lowercases and trims enum settings so file and env values
// match the names Validate and the codec expect.
func canonicalize(cfg *AppConfig) {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Decode.MissingFields = strings.ToLower(strings.TrimSpace(cfg.Decode.MissingFields))
	cfg.Decode.UnknownFields = strings.ToLower(strings.TrimSpace(cfg.Decode.UnknownFields))
}
