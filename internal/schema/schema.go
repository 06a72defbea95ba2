// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package schema exposes the component schemas of the embedded OpenAPI
// document as declarative field tables: which properties exist, which are
// required, which accept null, and whether a decoded value fits.
package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/chidev/nestx/api"
	"github.com/chidev/nestx/internal/jsonvalue"
)

// MediaComponent is the schema name of the Media resource.
const MediaComponent = "Media"

// ErrUnknownComponent is returned for schema names the document does not declare.
var ErrUnknownComponent = errors.New("unknown schema component")

// Document is a loaded and validated OpenAPI document.
type Document struct {
	doc *openapi3.T
}

// Component is one object schema from components.schemas.
type Component struct {
	name     string
	schema   *openapi3.Schema
	required map[string]struct{}
}

// TypeError reports a property value whose JSON type the schema rejects.
type TypeError struct {
	Property string
	Want     string
	Got      string
	Cause    error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("property %q: expected %s, got %s", e.Property, e.Want, e.Got)
}

func (e *TypeError) Unwrap() error {
	return e.Cause
}

// Load parses and validates an OpenAPI document. A nil or empty data slice
// loads the embedded api.Spec.
func Load(ctx context.Context, data []byte) (*Document, error) {
	if len(data) == 0 {
		data = api.Spec
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return &Document{doc: doc}, nil
}

var (
	defaultOnce sync.Once
	defaultDoc  *Document
	defaultErr  error
)

// Default returns the embedded document, loading it on first use.
func Default() (*Document, error) {
	defaultOnce.Do(func() {
		defaultDoc, defaultErr = Load(context.Background(), nil)
	})
	return defaultDoc, defaultErr
}

// Media returns the Media component of the embedded document.
func Media() (*Component, error) {
	doc, err := Default()
	if err != nil {
		return nil, err
	}
	return doc.Component(MediaComponent)
}

// Version returns info.version of the document.
func (d *Document) Version() string {
	if d.doc.Info == nil {
		return ""
	}
	return d.doc.Info.Version
}

// Component looks up a schema by name.
func (d *Document) Component(name string) (*Component, error) {
	if d.doc.Components == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	ref, ok := d.doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}

	required := make(map[string]struct{}, len(ref.Value.Required))
	for _, r := range ref.Value.Required {
		required[r] = struct{}{}
	}
	return &Component{name: name, schema: ref.Value, required: required}, nil
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.name
}

// Required returns the required property names in declaration order.
func (c *Component) Required() []string {
	out := make([]string, len(c.schema.Required))
	copy(out, c.schema.Required)
	return out
}

// Properties returns all declared property names, sorted.
func (c *Component) Properties() []string {
	out := make([]string, 0, len(c.schema.Properties))
	for name := range c.schema.Properties {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Has reports whether name is a declared property.
func (c *Component) Has(name string) bool {
	_, ok := c.schema.Properties[name]
	return ok
}

// IsRequired reports whether name is listed as required.
func (c *Component) IsRequired(name string) bool {
	_, ok := c.required[name]
	return ok
}

// Nullable reports whether the property accepts null.
func (c *Component) Nullable(name string) bool {
	p := c.property(name)
	return p != nil && p.Nullable
}

// CheckProperty validates a decoded JSON value against the property schema.
// Values of undeclared properties are accepted; unknown-field policy is the
// caller's concern.
func (c *Component) CheckProperty(name string, value any) error {
	p := c.property(name)
	if p == nil {
		return nil
	}
	if err := p.VisitJSON(value); err != nil {
		return &TypeError{
			Property: name,
			Want:     typeName(p),
			Got:      jsonvalue.KindOf(value).String(),
			Cause:    err,
		}
	}
	return nil
}

func (c *Component) property(name string) *openapi3.Schema {
	ref, ok := c.schema.Properties[name]
	if !ok || ref == nil {
		return nil
	}
	return ref.Value
}

func typeName(s *openapi3.Schema) string {
	if s.Type == nil || len(*s.Type) == 0 {
		return "any"
	}
	want := strings.Join(*s.Type, "|")
	if s.Nullable {
		want += "|null"
	}
	return want
}
