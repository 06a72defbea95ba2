// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package jsonvalue treats untyped Go values as JSON documents: it classifies
// them, compares them structurally, hashes them and renders them for humans.
//
// Two values are considered equal when their canonical encodings match. The
// canonical encoding sorts object keys and normalises numbers, so int(1),
// float64(1), json.Number("1.0") and the literal 1 decoded from a payload all
// compare equal.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind is the JSON shape of a value.
type Kind int

const (
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{
	Invalid: "invalid",
	Null:    "null",
	Bool:    "boolean",
	Number:  "number",
	String:  "string",
	Array:   "array",
	Object:  "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// KindOf reports the JSON shape v encodes to. Values that encoding/json
// cannot represent (channels, funcs, complex numbers) are Invalid.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case json.Number:
		return Number
	case string:
		return String
	case json.RawMessage:
		var generic any
		if err := json.Unmarshal(t, &generic); err != nil {
			return Invalid
		}
		return KindOf(generic)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number
	case reflect.String:
		return String
	case reflect.Slice:
		if rv.IsNil() {
			return Null
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String // base64 per encoding/json
		}
		return Array
	case reflect.Array:
		return Array
	case reflect.Map:
		if rv.IsNil() {
			return Null
		}
		return Object
	case reflect.Struct:
		return Object
	default:
		return Invalid
	}
}

// Canonical returns the compact canonical encoding of v.
func Canonical(v any) ([]byte, error) {
	raw, err := encode(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("jsonvalue: re-decode: %w", err)
	}
	return encode(normalize(generic))
}

// Equal reports whether a and b describe the same JSON value. Values that
// cannot be encoded fall back to reflect.DeepEqual.
func Equal(a, b any) bool {
	ca, errA := Canonical(a)
	cb, errB := Canonical(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ca, cb)
}

// Hash returns a 64-bit hash of v consistent with Equal.
func Hash(v any) uint64 {
	d := xxhash.New()
	WriteHash(d, v)
	return d.Sum64()
}

// WriteHash feeds the canonical form of v into d. Unencodable values are
// hashed through their Go syntax representation.
func WriteHash(d *xxhash.Digest, v any) {
	c, err := Canonical(v)
	if err != nil {
		_, _ = d.WriteString("!")
		_, _ = d.WriteString(fmt.Sprintf("%#v", v))
		return
	}
	_, _ = d.Write(c)
}

// Clone returns a deep copy of v made of generic JSON values (maps, slices,
// json.Number, strings, bools). The copy is Equal to v. Unencodable values are
// returned as is.
func Clone(v any) any {
	if v == nil {
		return nil
	}
	raw, err := encode(v)
	if err != nil {
		return v
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return v
	}
	return generic
}

// Render formats v for diagnostics. nil renders as "null", strings verbatim
// and everything else as two-space indented canonical JSON.
func Render(v any) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case string:
		return s
	}
	if KindOf(v) == Null {
		return "null"
	}

	c, err := Canonical(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, c, "", "  "); err != nil {
		return string(c)
	}
	return out.String()
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("jsonvalue: encode: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	case json.Number:
		return normalizeNumber(t)
	default:
		return v
	}
}

// normalizeNumber rewrites a JSON number into the one spelling shared by
// every numerically equal literal, without rounding: 1, 1.0, 10e-1 and
// 0.1e1 all become 1, and 12345678901234567890 stays distinct from
// 12345678901234567891.
func normalizeNumber(n json.Number) json.Number {
	s := string(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	mant, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return n
		}
		mant, exp = s[:i], e
	}
	intPart, frac, _ := strings.Cut(mant, ".")
	if !isDigits(intPart) || !isDigits(frac) || intPart+frac == "" {
		return n
	}

	// value = digits * 10^exp with no leading or trailing zeros in digits
	digits := strings.TrimLeft(intPart+frac, "0")
	exp -= len(frac)
	if digits == "" {
		return "0"
	}
	trimmed := strings.TrimRight(digits, "0")
	exp += len(digits) - len(trimmed)
	digits = trimmed

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	switch point := len(digits) + exp; {
	case exp >= 0 && exp <= maxPlainExponent:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", exp))
	case exp < 0 && point > 0:
		b.WriteString(digits[:point])
		b.WriteByte('.')
		b.WriteString(digits[point:])
	case exp < 0 && -point <= maxLeadingZeros:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -point))
		b.WriteString(digits)
	default:
		b.WriteString(digits[:1])
		if len(digits) > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		b.WriteString(strconv.Itoa(point - 1))
	}
	return json.Number(b.String())
}

const (
	maxPlainExponent = 21
	maxLeadingZeros  = 6
)

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
