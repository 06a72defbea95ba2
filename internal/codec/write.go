// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package codec

import (
	"context"
	"fmt"

	"github.com/google/renameio/v2"

	"github.com/chidev/nestx/internal/log"
	"github.com/chidev/nestx/internal/model"
)

// WriteFile atomically replaces path with records encoded as concatenated
// documents, one per line. The file is either fully written or untouched.
func WriteFile(ctx context.Context, path string, records []*model.Media) error {
	logger := log.WithComponentFromContext(ctx, "codec")

	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending media file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Str(log.FieldPath, path).Msg("cleanup pending media file")
		}
	}()

	for _, m := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := Encode(pendingFile, m); err != nil {
			return err
		}
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace media file: %w", err)
	}
	logger.Debug().
		Str(log.FieldPath, path).
		Int("records", len(records)).
		Msg("media file written")
	return nil
}
