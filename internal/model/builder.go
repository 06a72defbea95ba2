// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

import "github.com/chidev/nestx/internal/jsonvalue"

// Builder accumulates Media fields. Build hands out independent copies, so a
// builder can be reused as a template without aliasing earlier results.
type Builder struct {
	m Media
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// From seeds a builder with the fields of m. A nil m yields an empty builder.
func From(m *Media) *Builder {
	b := NewBuilder()
	if m != nil {
		b.m = *m
		b.m.Ext = jsonvalue.Clone(m.Ext)
	}
	return b
}

func (b *Builder) ID(id string) *Builder {
	b.m.ID = id
	return b
}

func (b *Builder) Name(name string) *Builder {
	b.m.Name = name
	return b
}

func (b *Builder) Caption(caption string) *Builder {
	b.m.Caption = caption
	return b
}

func (b *Builder) Description(description string) *Builder {
	b.m.Description = description
	return b
}

func (b *Builder) Ext(ext interface{}) *Builder {
	b.m.Ext = ext
	return b
}

func (b *Builder) URL(url string) *Builder {
	b.m.URL = url
	return b
}

func (b *Builder) URI(uri string) *Builder {
	b.m.URI = uri
	return b
}

// Build returns the accumulated Media. Ext is deep-copied.
func (b *Builder) Build() Media {
	out := b.m
	out.Ext = jsonvalue.Clone(b.m.Ext)
	return out
}
