// Package conv 提供数值类型归一化与 map 配置读取等泛型工具，用于简化各模块中的重复逻辑。
package conv

import "time"

// ToFloat64 将 any 转为 float64。
// 支持所有整数宽度与 float32/float64；不做 string/bool 的隐式转换。
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	}
	if i, ok := ToInt64(v); ok {
		return float64(i), true
	}
	if u, ok := v.(uint64); ok {
		return float64(u), true
	}
	return 0, false
}

// ToInt64 将整数类型的 any 转为 int64。
// uint64 超出 int64 范围时返回 false。
func ToInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int64:
		return val, true
	case int32:
		return int64(val), true
	case int16:
		return int64(val), true
	case int8:
		return int64(val), true
	case uint:
		if uint64(val) > 1<<63-1 {
			return 0, false
		}
		return int64(val), true
	case uint64:
		if val > 1<<63-1 {
			return 0, false
		}
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint8:
		return int64(val), true
	default:
		return 0, false
	}
}

// ConfigGet 从 map[string]any（如 YAML/JSON 解析结果）按 key 取 T，取不到或类型不符时返回 defaultVal。
func ConfigGet[T any](m map[string]any, key string, defaultVal T) T {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	t, ok := v.(T)
	if !ok {
		return defaultVal
	}
	return t
}

// ConfigGetFloat64 从 config 取 float64。YAML 中 `default: 1` 会解析为 int，此处统一为 float64。
func ConfigGetFloat64(m map[string]any, key string, defaultVal float64) float64 {
	if m == nil {
		return defaultVal
	}
	if f, ok := ToFloat64(m[key]); ok {
		return f
	}
	return defaultVal
}

// ConfigGetInt64 从 config 取 int64。YAML/JSON 常得到 int 或 float64，此处兼容并统一为 int64。
func ConfigGetInt64(m map[string]any, key string, defaultVal int64) int64 {
	if m == nil {
		return defaultVal
	}
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	if i, ok := ToInt64(v); ok {
		return i
	}
	switch val := v.(type) {
	case float64:
		return int64(val)
	case float32:
		return int64(val)
	default:
		return defaultVal
	}
}

// ConfigGetDuration 从 config 取时长，支持 "72h" 形式的字符串或以秒为单位的数字。
func ConfigGetDuration(m map[string]any, key string, defaultVal time.Duration) time.Duration {
	if m == nil {
		return defaultVal
	}
	switch val := m[key].(type) {
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return defaultVal
		}
		return d
	case nil:
		return defaultVal
	default:
		if f, ok := ToFloat64(val); ok {
			return time.Duration(f * float64(time.Second))
		}
		return defaultVal
	}
}
