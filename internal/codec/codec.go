// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package codec moves Media records across the JSON boundary. Encoding always
// emits all seven keys. Decoding checks the payload against the OpenAPI
// schema first, so callers get "missing required field" and "type mismatch"
// errors instead of silently zeroed fields.
package codec

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/chidev/nestx/internal/jsonvalue"
	"github.com/chidev/nestx/internal/log"
	"github.com/chidev/nestx/internal/metrics"
	"github.com/chidev/nestx/internal/model"
	"github.com/chidev/nestx/internal/schema"
	"github.com/chidev/nestx/internal/validate"
)

// rootField names the document itself in validation errors.
const rootField = "$"

var (
	// ErrMalformed is returned for input that is not JSON.
	ErrMalformed = errors.New("malformed JSON")
	// ErrNilMedia is returned when encoding a nil record.
	ErrNilMedia = errors.New("nil media")
)

// wire fixes the key order of encoded documents to the declared field order.
type wire struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Caption     string      `json:"caption"`
	Description string      `json:"description"`
	Ext         interface{} `json:"ext"`
	URL         string      `json:"url"`
	URI         string      `json:"uri"`
}

func toWire(m *model.Media) wire {
	return wire{
		ID:          m.ID,
		Name:        m.Name,
		Caption:     m.Caption,
		Description: m.Description,
		Ext:         m.Ext,
		URL:         m.URL,
		URI:         m.URI,
	}
}

func (w wire) media() *model.Media {
	return model.NewMedia(w.ID, w.Name, w.Caption, w.Description, w.Ext, w.URL, w.URI)
}

// Encode writes m as a single JSON document followed by a newline.
func Encode(w io.Writer, m *model.Media) error {
	if m == nil {
		return ErrNilMedia
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toWire(m)); err != nil {
		return fmt.Errorf("encode media %q: %w", m.ID, err)
	}
	return nil
}

// Marshal returns the compact JSON encoding of m.
func Marshal(m *model.Media) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decoder turns JSON documents into Media records.
type Decoder struct {
	policy    Policy
	component *schema.Component
	rules     *validate.MediaRules
	logger    zerolog.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithValidation runs the boundary validator on every decoded record.
func WithValidation(rules validate.MediaRules) Option {
	return func(d *Decoder) {
		r := rules
		d.rules = &r
	}
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

// WithSchema decodes against c instead of the embedded Media schema.
func WithSchema(c *schema.Component) Option {
	return func(d *Decoder) {
		d.component = c
	}
}

// NewDecoder builds a decoder for policy.
func NewDecoder(policy Policy, opts ...Option) (*Decoder, error) {
	d := &Decoder{
		policy: policy,
		logger: log.WithComponent("codec"),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.component == nil {
		c, err := schema.Media()
		if err != nil {
			return nil, fmt.Errorf("media schema: %w", err)
		}
		d.component = c
	}
	return d, nil
}

// Policy returns the decoder's policy.
func (d *Decoder) Policy() Policy {
	return d.policy
}

// Decode parses one JSON object. All schema and policy problems are reported
// together as a validate.ValidationError.
func (d *Decoder) Decode(data []byte) (*model.Media, error) {
	fields, err := d.fields(data)
	if err != nil {
		return nil, err
	}

	v := validate.New()
	if fields == nil {
		var generic any
		_ = json.Unmarshal(data, &generic)
		v.TypeMismatch(rootField, "object", jsonvalue.KindOf(generic).String())
		return nil, d.reject(v)
	}

	if d.policy.MissingFields == Reject {
		for _, name := range d.component.Required() {
			_, ok := fields[name]
			v.Required(name, ok)
		}
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !d.component.Has(name) {
			if d.policy.UnknownFields == Reject {
				v.Unknown(name)
			}
			continue
		}
		var value any
		if err := json.Unmarshal(fields[name], &value); err != nil {
			v.TypeMismatch(name, "JSON value", "unparseable")
			continue
		}
		if err := d.component.CheckProperty(name, value); err != nil {
			var te *schema.TypeError
			if errors.As(err, &te) {
				v.TypeMismatch(name, te.Want, te.Got)
			} else {
				v.AddError(name, err.Error(), value)
			}
		}
	}

	if !v.IsValid() {
		return nil, d.reject(v)
	}

	m, err := fromFields(fields)
	if err != nil {
		metrics.RecordDecode(metrics.OutcomeRejected)
		return nil, err
	}

	if d.rules != nil {
		v.Merge(rootField, validate.Media(m, *d.rules))
		if !v.IsValid() {
			metrics.RecordValidationError()
			d.logger.Debug().
				Str(log.FieldMediaID, m.ID).
				Msg("media failed boundary validation")
			return nil, d.reject(v)
		}
	}

	metrics.RecordDecode(metrics.OutcomeSuccess)
	return m, nil
}

// fromFields builds the record from the exact, case-sensitive keys of an
// already checked object. Absent keys keep their zero value.
func fromFields(fields map[string]json.RawMessage) (*model.Media, error) {
	var w wire
	for name, dst := range map[string]*string{
		"id":          &w.ID,
		"name":        &w.Name,
		"caption":     &w.Caption,
		"description": &w.Description,
		"url":         &w.URL,
		"uri":         &w.URI,
	} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, fmt.Errorf("decode media field %q: %w", name, err)
		}
	}
	if raw, ok := fields["ext"]; ok {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&w.Ext); err != nil {
			return nil, fmt.Errorf("decode media field %q: %w", "ext", err)
		}
	}
	return w.media(), nil
}

func (d *Decoder) fields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		if !json.Valid(data) {
			metrics.RecordDecode(metrics.OutcomeMalformed)
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		// Valid JSON, wrong shape: handled by the caller as a type mismatch.
		return nil, nil
	}
	if fields == nil {
		// literal null
		return nil, nil
	}
	return fields, nil
}

func (d *Decoder) reject(v *validate.Validator) error {
	for _, e := range v.Errors() {
		metrics.RecordFieldError(e.Field, e.Rule)
		d.logger.Trace().
			Str(log.FieldField, e.Field).
			Str(log.FieldRule, e.Rule).
			Msg(e.Message)
	}
	metrics.RecordDecode(metrics.OutcomeRejected)

	err := v.Err()
	d.logger.Debug().
		Str(log.FieldOutcome, metrics.OutcomeRejected).
		Str(log.FieldPolicy, d.policy.String()).
		Int(log.FieldErrors, len(v.Errors())).
		Err(err).
		Msg("media document rejected")
	return err
}

// DocumentError locates a failure inside a multi-document stream.
type DocumentError struct {
	Index int
	Err   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %d: %v", e.Index, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// DecodeStream decodes either a JSON array of documents or a sequence of
// concatenated documents from r and calls fn for every record that decodes.
// Rejected documents are collected and returned joined once the stream ends;
// malformed JSON stops the stream immediately. ctx is checked between
// documents.
func (d *Decoder) DecodeStream(ctx context.Context, r io.Reader, fn func(index int, m *model.Media) error) error {
	logger := log.WithContext(ctx, d.logger)
	br := bufio.NewReader(r)

	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read stream: %w", err)
	}

	dec := json.NewDecoder(br)
	array := first == '['
	if array {
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	var errs []error
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if array && !dec.More() {
			break
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if !array && errors.Is(err, io.EOF) {
				break
			}
			metrics.RecordDecode(metrics.OutcomeMalformed)
			errs = append(errs, &DocumentError{Index: i, Err: fmt.Errorf("%w: %v", ErrMalformed, err)})
			return errors.Join(errs...)
		}

		m, err := d.Decode(raw)
		if err != nil {
			logger.Debug().Int("index", i).Err(err).Msg("skipping rejected document")
			errs = append(errs, &DocumentError{Index: i, Err: err})
			continue
		}
		if err := fn(i, m); err != nil {
			return err
		}
	}

	if array {
		if _, err := dec.Token(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrMalformed, err))
		}
	}
	return errors.Join(errs...)
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return 0, err
			}
		default:
			return b[0], nil
		}
	}
}

var (
	defaultOnce    sync.Once
	defaultDecoder *Decoder
	defaultErr     error
)

// Unmarshal decodes data with DefaultPolicy and no boundary validation.
func Unmarshal(data []byte) (*model.Media, error) {
	defaultOnce.Do(func() {
		defaultDecoder, defaultErr = NewDecoder(DefaultPolicy())
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultDecoder.Decode(data)
}
