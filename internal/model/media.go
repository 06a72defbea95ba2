// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package model

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/chidev/nestx/internal/jsonvalue"
)

// NewMedia returns a fully populated Media. Values are stored as given; the
// type performs no validation.
func NewMedia(id, name, caption, description string, ext interface{}, url, uri string) *Media {
	return &Media{
		ID:          id,
		Name:        name,
		Caption:     caption,
		Description: description,
		Ext:         ext,
		URL:         url,
		URI:         uri,
	}
}

// WithID sets ID and returns m for chaining.
func (m *Media) WithID(id string) *Media {
	m.ID = id
	return m
}

// WithName sets Name and returns m for chaining.
func (m *Media) WithName(name string) *Media {
	m.Name = name
	return m
}

// WithCaption sets Caption and returns m for chaining.
func (m *Media) WithCaption(caption string) *Media {
	m.Caption = caption
	return m
}

// WithDescription sets Description and returns m for chaining.
func (m *Media) WithDescription(description string) *Media {
	m.Description = description
	return m
}

// WithExt sets Ext and returns m for chaining.
func (m *Media) WithExt(ext interface{}) *Media {
	m.Ext = ext
	return m
}

// WithURL sets URL and returns m for chaining.
func (m *Media) WithURL(url string) *Media {
	m.URL = url
	return m
}

// WithURI sets URI and returns m for chaining.
func (m *Media) WithURI(uri string) *Media {
	m.URI = uri
	return m
}

// Equal reports whether m and other hold the same seven field values. Ext is
// compared as a JSON value, so key order and numeric representation do not
// matter. Two nil pointers are equal; nil is never equal to a non-nil Media.
func (m *Media) Equal(other *Media) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return m.ID == other.ID &&
		m.Name == other.Name &&
		m.Caption == other.Caption &&
		m.Description == other.Description &&
		jsonvalue.Equal(m.Ext, other.Ext) &&
		m.URL == other.URL &&
		m.URI == other.URI
}

// EqualAny is Equal for callers holding an untyped value. Anything that is
// not a Media or *Media compares unequal, including nil.
func (m *Media) EqualAny(v interface{}) bool {
	switch o := v.(type) {
	case *Media:
		if o == nil {
			return false
		}
		return m.Equal(o)
	case Media:
		return m.Equal(&o)
	default:
		return false
	}
}

// Hash returns a hash of all seven fields. Equal values hash identically.
func (m *Media) Hash() uint64 {
	if m == nil {
		return 0
	}
	d := xxhash.New()
	for _, s := range [...]string{m.ID, m.Name, m.Caption, m.Description} {
		writeString(d, s)
	}
	jsonvalue.WriteHash(d, m.Ext)
	writeString(d, m.URL)
	writeString(d, m.URI)
	return d.Sum64()
}

// writeString length-prefixes s so adjacent fields cannot run together.
func writeString(d *xxhash.Digest, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	_, _ = d.Write(n[:])
	_, _ = d.WriteString(s)
}

// String renders every field on its own line for diagnostics:
//
//	Media {
//	    id: m1
//	    ext: null
//	    ...
//	}
//
// A nil *Media renders as "null".
func (m *Media) String() string {
	if m == nil {
		return "null"
	}
	var sb strings.Builder
	sb.WriteString("Media {\n")
	writeLine(&sb, "id", m.ID)
	writeLine(&sb, "name", m.Name)
	writeLine(&sb, "caption", m.Caption)
	writeLine(&sb, "description", m.Description)
	writeLine(&sb, "ext", jsonvalue.Render(m.Ext))
	writeLine(&sb, "url", m.URL)
	writeLine(&sb, "uri", m.URI)
	sb.WriteString("}")
	return sb.String()
}

func writeLine(sb *strings.Builder, name, value string) {
	sb.WriteString("    ")
	sb.WriteString(name)
	sb.WriteString(": ")
	sb.WriteString(indent(value))
	sb.WriteString("\n")
}

// indent shifts every line after the first by four spaces.
func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n    ")
}
