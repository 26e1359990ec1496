package cast

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestIsBlank(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"whitespace", " \t\n", true},
		{"text", "x", false},
		{"empty []any", []any{}, true},
		{"empty []string", []string{}, true},
		{"empty map", map[string]any{}, true},
		{"zero number", 0, false},
		{"false", false, false},
		{"non-empty slice", []any{"a"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsBlank(tt.v))
		})
	}
}

func TestToString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    any
		want string
		ok   bool
	}{
		{"trimmed", "  BLOCK_NONE ", "BLOCK_NONE", true},
		{"float", 0.5, "0.5", true},
		{"int", 3, "3", true},
		{"json number", json.Number("12"), "12", true},
		{"bool", true, "true", true},
		{"map", map[string]any{}, "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ToString(tt.v)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToFloat64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    any
		want float64
		ok   bool
	}{
		{"float64", float64(1.5), 1.5, true},
		{"float32", float32(2.5), 2.5, true},
		{"int", 3, 3, true},
		{"int64", int64(4), 4, true},
		{"int32", int32(5), 5, true},
		{"uint", uint(8), 8, true},
		{"uint32", uint32(11), 11, true},
		{"uint64", uint64(12), 12, true},
		{"json number", json.Number("0.25"), 0.25, true},
		{"numeric string", " 0.7 ", 0.7, true},
		{"bad string", "warm", 0, false},
		{"bad json number", json.Number("x"), 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf string", "Inf", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ToFloat64(tt.v)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestToInt64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    any
		want int64
		ok   bool
	}{
		{"int64", int64(1), 1, true},
		{"int", 2, 2, true},
		{"int32", int32(3), 3, true},
		{"uint", uint(6), 6, true},
		{"uint32", uint32(9), 9, true},
		{"uint64 small", uint64(10), 10, true},
		{"uint64 overflow clamped", uint64(math.MaxInt64) + 999, math.MaxInt64, true},
		{"integral float64", float64(9), 9, true},
		{"fractional float64", 9.5, 0, false},
		{"huge float clamped", 1e30, math.MaxInt64, true},
		{"numeric string", "256", 256, true},
		{"json number", json.Number("40"), 40, true},
		{"bad string", "many", 0, false},
		{"bool", false, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ToInt64(tt.v)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestToStringSlice(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		v      any
		want   []string
		wantOk bool
	}{
		{"[]string", []string{"a", "b"}, []string{"a", "b"}, true},
		{"[]any all strings", []any{"x", "y"}, []string{"x", "y"}, true},
		{"[]any empty", []any{}, []string{}, true},
		{"[]any mixed types", []any{"a", 123, "b"}, nil, false},
		{"non-slice", "not a slice", nil, false},
		{"nil", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ToStringSlice(tt.v)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMapSlice(t *testing.T) {
	t.Parallel()
	one := map[string]any{"category": "HARM_CATEGORY_HARASSMENT"}
	got, ok := ToMapSlice([]any{one})
	assert.True(t, ok)
	assert.Equal(t, []map[string]any{one}, got)

	got, ok = ToMapSlice([]map[string]any{one})
	assert.True(t, ok)
	assert.Len(t, got, 1)

	_, ok = ToMapSlice([]any{one, "x"})
	assert.False(t, ok)
	_, ok = ToMapSlice(one)
	assert.False(t, ok)
}
