// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads runtime settings with precedence ENV > file > defaults.
package config

import (
	"fmt"

	"github.com/chidev/nestx/internal/codec"
	"github.com/chidev/nestx/internal/validate"
)

// Environment variable names.
const (
	EnvLogLevel          = "NESTX_LOG_LEVEL"
	EnvDecodeMissing     = "NESTX_DECODE_MISSING"
	EnvDecodeUnknown     = "NESTX_DECODE_UNKNOWN"
	EnvValidationEnabled = "NESTX_VALIDATION_ENABLED"
	EnvExtNullable       = "NESTX_VALIDATION_EXT_NULLABLE"
	EnvURLSchemes        = "NESTX_VALIDATION_URL_SCHEMES"
)

// AppConfig is the resolved configuration.
type AppConfig struct {
	LogLevel   string
	Decode     DecodeConfig
	Validation ValidationConfig
}

// DecodeConfig selects the codec policy by name ("reject" or "tolerate").
type DecodeConfig struct {
	MissingFields string
	UnknownFields string
}

// ValidationConfig controls the boundary validator run after decoding.
type ValidationConfig struct {
	Enabled     bool
	ExtNullable bool
	URLSchemes  []string
}

// FileConfig mirrors the YAML file. Pointers distinguish "unset" from zero.
type FileConfig struct {
	LogLevel   string                `yaml:"logLevel,omitempty"`
	Decode     *DecodeFileConfig     `yaml:"decode,omitempty"`
	Validation *ValidationFileConfig `yaml:"validation,omitempty"`
}

type DecodeFileConfig struct {
	MissingFields string `yaml:"missingFields,omitempty"`
	UnknownFields string `yaml:"unknownFields,omitempty"`
}

type ValidationFileConfig struct {
	Enabled     *bool    `yaml:"enabled,omitempty"`
	ExtNullable *bool    `yaml:"extNullable,omitempty"`
	URLSchemes  []string `yaml:"urlSchemes,omitempty"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	rules := validate.DefaultMediaRules()
	return AppConfig{
		LogLevel: "info",
		Decode: DecodeConfig{
			MissingFields: codec.Reject.String(),
			UnknownFields: codec.Tolerate.String(),
		},
		Validation: ValidationConfig{
			Enabled:     false,
			ExtNullable: rules.ExtNullable,
			URLSchemes:  rules.URLSchemes,
		},
	}
}

// Policy converts the decode settings into a codec policy.
func (c AppConfig) Policy() (codec.Policy, error) {
	missing, err := codec.ParseMode(c.Decode.MissingFields)
	if err != nil {
		return codec.Policy{}, fmt.Errorf("decode.missingFields: %w", err)
	}
	unknown, err := codec.ParseMode(c.Decode.UnknownFields)
	if err != nil {
		return codec.Policy{}, fmt.Errorf("decode.unknownFields: %w", err)
	}
	return codec.Policy{MissingFields: missing, UnknownFields: unknown}, nil
}

// MediaRules returns the validator rules.
func (c AppConfig) MediaRules() validate.MediaRules {
	schemes := make([]string, len(c.Validation.URLSchemes))
	copy(schemes, c.Validation.URLSchemes)
	return validate.MediaRules{
		ExtNullable: c.Validation.ExtNullable,
		URLSchemes:  schemes,
	}
}

// DecoderOptions returns the codec options implied by the config.
func (c AppConfig) DecoderOptions() []codec.Option {
	if !c.Validation.Enabled {
		return nil
	}
	return []codec.Option{codec.WithValidation(c.MediaRules())}
}
