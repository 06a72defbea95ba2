// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package jsonvalue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *int

	tests := []struct {
		name string
		v    any
		want Kind
	}{
		{"nil", nil, Null},
		{"nil map", nilMap, Null},
		{"nil pointer", nilPtr, Null},
		{"bool", true, Bool},
		{"int", 3, Number},
		{"float", 2.5, Number},
		{"json number", json.Number("7"), Number},
		{"string", "x", String},
		{"bytes", []byte("x"), String},
		{"list", []any{1, "a"}, Array},
		{"typed list", []string{"a"}, Array},
		{"object", map[string]any{"a": 1}, Object},
		{"struct", struct{ A int }{1}, Object},
		{"raw object", json.RawMessage(`{"a":1}`), Object},
		{"raw broken", json.RawMessage(`{`), Invalid},
		{"channel", make(chan int), Invalid},
		{"func", func() {}, Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.v))
		})
	}
}

func TestCanonicalSortsKeysAndNormalisesNumbers(t *testing.T) {
	got, err := Canonical(map[string]any{
		"b": 1.0,
		"a": []any{json.Number("2.50"), int64(3), "<tag>"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":[2.5,3,"<tag>"],"b":1}`, string(got))
}

func TestCanonicalNumbers(t *testing.T) {
	tests := []struct {
		in   json.Number
		want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"0.000", "0"},
		{"1.0", "1"},
		{"10e-1", "1"},
		{"0.1e1", "1"},
		{"100", "100"},
		{"1E2", "100"},
		{"2.50", "2.5"},
		{"-2.50", "-2.5"},
		{"0.5", "0.5"},
		{"1e-07", "0.0000001"},
		{"1e+21", "1000000000000000000000"},
		{"1e22", "1e22"},
		{"1.5e-10", "1.5e-10"},
		{"12345678901234567890", "12345678901234567890"},
		{"123456789012345678901234567890.5", "123456789012345678901234567890.5"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := Canonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestLargeNumbersKeepFullPrecision(t *testing.T) {
	a := map[string]any{"n": json.Number("12345678901234567890")}
	b := map[string]any{"n": json.Number("12345678901234567891")}
	assert.False(t, Equal(a, b))
	assert.NotEqual(t, Hash(a), Hash(b))

	assert.False(t, Equal(json.Number("0.10000000000000000001"), json.Number("0.1")))
	assert.True(t, Equal(json.Number("1e20"), json.Number("100000000000000000000")))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs empty object", nil, map[string]any{}, false},
		{"int vs float", 1, 1.0, true},
		{"number vs json number", 1.5, json.Number("1.50"), true},
		{"different numbers", 1, 2, false},
		{"key order", map[string]any{"a": 1, "b": 2}, map[string]any{"b": 2, "a": 1}, true},
		{"nested", map[string]any{"a": []any{map[string]any{"x": nil}}}, map[string]any{"a": []any{map[string]any{"x": nil}}}, true},
		{"nested absent vs null", map[string]any{"a": map[string]any{}}, map[string]any{"a": map[string]any{"x": nil}}, false},
		{"list order matters", []any{1, 2}, []any{2, 1}, false},
		{"string vs number", "1", 1, false},
		{"typed vs generic map", map[string]int{"a": 1}, map[string]any{"a": 1.0}, true},
		{"raw vs decoded", json.RawMessage(`{"b":2,"a":1}`), map[string]any{"a": 1, "b": 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "Equal must be symmetric")
			if tt.want {
				assert.Equal(t, Hash(tt.a), Hash(tt.b), "equal values must hash identically")
			}
		})
	}
}

func TestEqualFallsBackForUnencodableValues(t *testing.T) {
	ch := make(chan int)
	assert.True(t, Equal(ch, ch))
	assert.False(t, Equal(ch, make(chan int)))
	assert.False(t, Equal(ch, nil))
	assert.NotPanics(t, func() { _ = Hash(ch) })
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, "null"},
		{"nil map", map[string]any(nil), "null"},
		{"string verbatim", "hello\nworld", "hello\nworld"},
		{"number", 42, "42"},
		{"bool", false, "false"},
		{"object", map[string]any{"b": 1, "a": "x"}, "{\n  \"a\": \"x\",\n  \"b\": 1\n}"},
		{"empty list", []any{}, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.v))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "object", Object.String())
	assert.Equal(t, "invalid", Kind(99).String())
}

func TestCloneIsDeepAndEqual(t *testing.T) {
	src := map[string]any{"tags": []any{"a", "b"}, "size": 10}
	cp := Clone(src)
	require.True(t, Equal(src, cp))

	cp.(map[string]any)["tags"].([]any)[0] = "changed"
	assert.Equal(t, "a", src["tags"].([]any)[0], "clone must not alias the source")
	assert.Nil(t, Clone(nil))
}
