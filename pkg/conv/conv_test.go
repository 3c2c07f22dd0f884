package conv

import (
	"testing"
	"time"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{3.5, 3.5, true},
		{float32(1.5), 1.5, true},
		{int(7), 7, true},
		{int8(-2), -2, true},
		{uint16(9), 9, true},
		{uint64(1 << 63), float64(uint64(1 << 63)), true},
		{"3", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToFloat64(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ToFloat64(%#v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestToInt64_Overflow(t *testing.T) {
	if _, ok := ToInt64(uint64(1 << 63)); ok {
		t.Errorf("uint64 above MaxInt64 should not convert")
	}
	if v, ok := ToInt64(uint32(42)); !ok || v != 42 {
		t.Errorf("ToInt64(uint32) = %v, %v", v, ok)
	}
}

func TestConfigGetters(t *testing.T) {
	cfg := map[string]any{
		"name":       "title",
		"default":    1,
		"min_length": 2.0,
		"half_life":  "72h",
		"window":     30,
	}
	if got := ConfigGet(cfg, "name", ""); got != "title" {
		t.Errorf("ConfigGet(name) = %q", got)
	}
	if got := ConfigGet(cfg, "default", ""); got != "" {
		t.Errorf("ConfigGet with mismatched type should return default, got %q", got)
	}
	if got := ConfigGetFloat64(cfg, "default", 0); got != 1 {
		t.Errorf("ConfigGetFloat64(default) = %v", got)
	}
	if got := ConfigGetInt64(cfg, "min_length", 0); got != 2 {
		t.Errorf("ConfigGetInt64(min_length) = %v", got)
	}
	if got := ConfigGetDuration(cfg, "half_life", 0); got != 72*time.Hour {
		t.Errorf("ConfigGetDuration(half_life) = %v", got)
	}
	if got := ConfigGetDuration(cfg, "window", 0); got != 30*time.Second {
		t.Errorf("ConfigGetDuration(window) = %v", got)
	}
	if got := ConfigGetDuration(nil, "x", time.Minute); got != time.Minute {
		t.Errorf("nil config should return default")
	}
}
