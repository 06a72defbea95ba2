// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chidev/nestx/internal/model"
)

func validMedia() *model.Media {
	return model.NewMedia("m1", "Photo", "c", "d", nil, "http://x/y", "urn:1")
}

func TestMediaValid(t *testing.T) {
	assert.NoError(t, Media(validMedia(), DefaultMediaRules()))
}

func TestMediaRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.Media)
		rules     MediaRules
		wantField string
		wantErr   error
	}{
		{"empty id", func(m *model.Media) { m.ID = "" }, DefaultMediaRules(), "id", ErrInvalid},
		{"blank caption", func(m *model.Media) { m.Caption = "  " }, DefaultMediaRules(), "caption", ErrInvalid},
		{"relative url", func(m *model.Media) { m.URL = "/x/y" }, DefaultMediaRules(), "url", ErrInvalid},
		{"ftp url", func(m *model.Media) { m.URL = "ftp://x/y" }, DefaultMediaRules(), "url", ErrInvalid},
		{"ftp url any scheme", func(m *model.Media) { m.URL = "ftp://x/y" }, MediaRules{ExtNullable: true}, "", nil},
		{"null ext forbidden", func(m *model.Media) {}, MediaRules{ExtNullable: false}, "ext", ErrRequired},
		{"ext present", func(m *model.Media) { m.Ext = map[string]any{} }, MediaRules{ExtNullable: false}, "", nil},
		{"typed nil ext forbidden", func(m *model.Media) { m.Ext = map[string]any(nil) }, MediaRules{ExtNullable: false}, "ext", ErrRequired},
		{"nil slice ext forbidden", func(m *model.Media) { m.Ext = []any(nil) }, MediaRules{ExtNullable: false}, "ext", ErrRequired},
		{"empty uri", func(m *model.Media) { m.URI = "" }, DefaultMediaRules(), "uri", ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMedia()
			tt.mutate(m)
			err := Media(m, tt.rules)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var ve ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, []string{tt.wantField}, ve.Fields())
		})
	}
}

func TestMediaNil(t *testing.T) {
	err := Media(nil, DefaultMediaRules())
	assert.ErrorIs(t, err, ErrRequired)
}

func TestMediaReportsAllProblems(t *testing.T) {
	err := Media(&model.Media{}, DefaultMediaRules())
	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"id", "name", "caption", "description", "url", "uri"}, ve.Fields())
}
