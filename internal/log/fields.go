// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldDocument  = "document"
	FieldMediaID   = "media_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Decode / validation fields
	FieldField   = "field"
	FieldRule    = "rule"
	FieldPolicy  = "policy"
	FieldOutcome = "outcome"
	FieldErrors  = "errors"

	// Path fields
	FieldPath = "path"
)
