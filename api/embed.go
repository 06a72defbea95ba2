// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api holds the OpenAPI description of the nestx resources.
package api

import _ "embed"

// Spec is the raw OpenAPI 3 document.
//
//go:embed openapi.yaml
var Spec []byte
