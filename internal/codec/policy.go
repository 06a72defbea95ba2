// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package codec

import (
	"fmt"
	"strings"
)

// Mode decides what happens to a key the schema and payload disagree on.
type Mode int

const (
	// Reject fails the decode.
	Reject Mode = iota
	// Tolerate decodes anyway: missing keys keep their zero value, unknown
	// keys are dropped.
	Tolerate
)

func (m Mode) String() string {
	switch m {
	case Reject:
		return "reject"
	case Tolerate:
		return "tolerate"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "reject" or "tolerate", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject":
		return Reject, nil
	case "tolerate":
		return Tolerate, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (must be reject or tolerate)", s)
	}
}

// Policy is the decode-time treatment of required and undeclared keys.
type Policy struct {
	MissingFields Mode
	UnknownFields Mode
}

// DefaultPolicy rejects payloads missing a required key and ignores extras.
func DefaultPolicy() Policy {
	return Policy{MissingFields: Reject, UnknownFields: Tolerate}
}

func (p Policy) String() string {
	return "missing=" + p.MissingFields.String() + ",unknown=" + p.UnknownFields.String()
}
