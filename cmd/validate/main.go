// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// validate is a CLI tool to check Media JSON documents against the API schema.
//
// Usage:
//
//	validate -f media.json
//	validate --file media.json --config nestx.yaml --quiet
//	validate -f media.json -out normalized.json
//
// The file may hold a single document, a JSON array of documents or several
// concatenated documents. With -out, the valid records are rewritten in
// canonical key order, one document per line.
//
// Exit codes:
//   - 0: Every document is valid
//   - 1: A document, the file or the configuration is invalid
//   - 2: Usage error (missing required flag)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chidev/nestx/internal/codec"
	"github.com/chidev/nestx/internal/config"
	"github.com/chidev/nestx/internal/log"
	"github.com/chidev/nestx/internal/model"
	"github.com/chidev/nestx/internal/version"
)

func main() {
	log.Configure(log.Config{Service: "nestx-validate"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		file        string
		configPath  string
		outPath     string
		quiet       bool
		showVersion bool
	)
	fs.StringVar(&file, "file", "", "path to media JSON file")
	fs.StringVar(&file, "f", "", "path to media JSON file (shorthand)")
	fs.StringVar(&configPath, "config", "", "path to YAML configuration file")
	fs.StringVar(&outPath, "out", "", "write the decoded records to this file in canonical form")
	fs.BoolVar(&quiet, "quiet", false, "only print the summary")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	if file == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  validate -f media.json")
		fmt.Fprintln(stderr, "  validate --file media.json --config nestx.yaml")
		return 2
	}

	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error:\n")
		fmt.Fprintf(stderr, "  %v\n", err)
		return 1
	}
	log.SetLevel(cfg.LogLevel)

	policy, err := cfg.Policy()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error:\n")
		fmt.Fprintf(stderr, "  %v\n", err)
		return 1
	}
	dec, err := codec.NewDecoder(policy, cfg.DecoderOptions()...)
	if err != nil {
		fmt.Fprintf(stderr, "Schema error:\n")
		fmt.Fprintf(stderr, "  %v\n", err)
		return 1
	}

	// #nosec G304 -- the operator names the file on the command line
	f, err := os.Open(file)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading %s:\n", file)
		fmt.Fprintf(stderr, "  %v\n", err)
		return 1
	}
	defer func() { _ = f.Close() }()

	ctx = log.ContextWithDocument(ctx, file)
	logger := log.WithComponentFromContext(ctx, "validate")

	var decoded []*model.Media
	records := 0
	err = dec.DecodeStream(ctx, f, func(_ int, m *model.Media) error {
		records++
		if outPath != "" {
			decoded = append(decoded, m)
		}
		if !quiet {
			fmt.Fprintln(stdout, m)
		}
		return nil
	})
	if err != nil {
		logger.Debug().
			Str(log.FieldEvent, "validate.failed").
			Err(err).
			Int("records", records).
			Msg("validation failed")
		fmt.Fprintf(stderr, "Validation error in %s:\n", file)
		for _, line := range flatten(err) {
			fmt.Fprintf(stderr, "  %s\n", line)
		}
		return 1
	}

	if outPath != "" {
		if err := codec.WriteFile(ctx, outPath, decoded); err != nil {
			fmt.Fprintf(stderr, "Error writing %s:\n", outPath)
			fmt.Fprintf(stderr, "  %v\n", err)
			return 1
		}
	}

	fmt.Fprintf(stdout, "✓ %s is valid (%d records)\n", file, records)
	return 0
}

// flatten splits joined errors into one line each.
func flatten(err error) []string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	var lines []string
	for _, e := range joined.Unwrap() {
		lines = append(lines, e.Error())
	}
	return lines
}
