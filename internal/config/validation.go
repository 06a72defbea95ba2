// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"github.com/chidev/nestx/internal/codec"
	"github.com/chidev/nestx/internal/validate"
)

var (
	modes     = []string{codec.Reject.String(), codec.Tolerate.String()}
	logLevels = []string{
		validate.LogLevelTrace.String(),
		validate.LogLevelDebug.String(),
		validate.LogLevelInfo.String(),
		validate.LogLevelWarn.String(),
		validate.LogLevelError.String(),
	}
)

// Validate checks a resolved configuration.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.OneOf("logLevel", cfg.LogLevel, logLevels)
	v.OneOf("decode.missingFields", cfg.Decode.MissingFields, modes)
	v.OneOf("decode.unknownFields", cfg.Decode.UnknownFields, modes)
	for _, scheme := range cfg.Validation.URLSchemes {
		v.NotEmpty("validation.urlSchemes", scheme)
	}

	return v.Err()
}
