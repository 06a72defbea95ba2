// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chidev/nestx/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvLogLevel, config.EnvDecodeMissing, config.EnvDecodeUnknown,
		config.EnvValidationEnabled, config.EnvExtNullable, config.EnvURLSchemes,
	} {
		t.Setenv(key, "")
	}
}

// TestValidateCLI runs the command against the fixtures in testdata/.
func TestValidateCLI(t *testing.T) {
	clearEnv(t)

	tolerant := filepath.Join(t.TempDir(), "tolerant.yaml")
	if err := os.WriteFile(tolerant, []byte("decode:\n  missingFields: tolerate\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantExit   int
		wantStdout string // substring expected in stdout
		wantStderr string // substring expected in stderr
	}{
		{
			name:       "valid array",
			args:       []string{"-f", "testdata/valid.json"},
			wantExit:   0,
			wantStdout: "is valid (2 records)",
		},
		{
			name:       "renders records",
			args:       []string{"--file", "testdata/valid.json"},
			wantExit:   0,
			wantStdout: "    ext: null\n",
		},
		{
			name:       "quiet",
			args:       []string{"-f", "testdata/valid.json", "-quiet"},
			wantExit:   0,
			wantStdout: "✓ testdata/valid.json is valid",
		},
		{
			name:       "missing field",
			args:       []string{"-f", "testdata/missing-field.json"},
			wantExit:   1,
			wantStderr: "missing",
		},
		{
			name:       "missing field tolerated by config",
			args:       []string{"-f", "testdata/missing-field.json", "-config", tolerant},
			wantExit:   0,
			wantStdout: "is valid (1 records)",
		},
		{
			name:       "type mismatch",
			args:       []string{"-f", "testdata/type-mismatch.json"},
			wantExit:   1,
			wantStderr: "expected string, got number",
		},
		{
			name:       "malformed",
			args:       []string{"-f", "testdata/malformed.json"},
			wantExit:   1,
			wantStderr: "malformed JSON",
		},
		{
			name:       "no file flag provided",
			args:       nil,
			wantExit:   2,
			wantStderr: "--file is required",
		},
		{
			name:       "non-existent file",
			args:       []string{"-f", "does-not-exist.json"},
			wantExit:   1,
			wantStderr: "Error reading",
		},
		{
			name:       "non-existent config",
			args:       []string{"-f", "testdata/valid.json", "-config", "does-not-exist.yaml"},
			wantExit:   1,
			wantStderr: "Configuration error",
		},
		{
			name:       "unwritable output",
			args:       []string{"-f", "testdata/valid.json", "-out", filepath.Join(t.TempDir(), "missing", "out.json")},
			wantExit:   1,
			wantStderr: "Error writing",
		},
		{
			name:     "unknown flag",
			args:     []string{"-x"},
			wantExit: 2,
		},
		{
			name:       "version",
			args:       []string{"-version"},
			wantExit:   0,
			wantStdout: "v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)

			if code != tt.wantExit {
				t.Errorf("exit code = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantExit, stdout.String(), stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}

func TestValidateCLIWritesCanonicalOutput(t *testing.T) {
	clearEnv(t)
	out := filepath.Join(t.TempDir(), "normalized.json")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-f", "testdata/valid.json", "-quiet", "-out", out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 documents, got %d:\n%s", len(lines), data)
	}
	want := `{"id":"m1","name":"Photo","caption":"c","description":"d","ext":null,"url":"http://x/y","uri":"urn:1"}`
	if lines[0] != want {
		t.Errorf("first document:\n got %s\nwant %s", lines[0], want)
	}

	// The normalized file validates on its own.
	stdout.Reset()
	if code := run(context.Background(), []string{"-f", out, "-quiet"}, &stdout, &stderr); code != 0 {
		t.Fatalf("re-validate exit code = %d, stderr: %s", code, stderr.String())
	}
}
