// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package codec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chidev/nestx/internal/model"
)

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.json")
	records := []*model.Media{
		model.NewMedia("m1", "Photo", "c", "d", nil, "http://x/y", "urn:1"),
		model.NewMedia("m2", "Clip", "c", "d", map[string]any{"tags": []any{"a"}}, "https://x/z", "urn:2"),
	}
	require.NoError(t, WriteFile(context.Background(), path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var got []*model.Media
	err = newDecoder(t, DefaultPolicy()).DecodeStream(context.Background(), f, func(_ int, m *model.Media) error {
		got = append(got, m)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range records {
		assert.True(t, records[i].Equal(got[i]), "record %d", i)
	}
}

func TestWriteFileLeavesTargetOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o600))

	err := WriteFile(context.Background(), path, []*model.Media{
		model.NewMedia("m1", "Photo", "c", "d", nil, "http://x/y", "urn:1"),
		nil,
	})
	assert.ErrorIs(t, err, ErrNilMedia)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "pending file must be cleaned up")
}
