// Package column 提供单个文档字段在打分时刻的只读类型化视图。
//
// Column 在每次字段访问时新建，构造后不可变，可被多个打分 goroutine 并发读取。
// nil *Column 表示字段缺失（absent），各 Function 自行定义缺失时的默认值。
package column

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pkg/conv"
)

// Kind 标记 Column 承载的原始值类型。
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// dateLayouts 是文本转日期时依次尝试的格式。
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Column 是一个文档字段的不可变值。原始值在 Of 中被归一化：
// 文本为 string，整数为 int64，浮点为 float64，日期为 time.Time。
type Column struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

// Of 包装一个已知原始类型的字段值。raw 为 nil 时返回 nil（absent Column）。
// 不支持的类型返回 COLUMN_TYPE 错误。
func Of(raw any) (*Column, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return &Column{kind: KindText, s: v}, nil
	case []byte:
		return &Column{kind: KindText, s: string(v)}, nil
	case bool:
		return &Column{kind: KindBool, b: v}, nil
	case float64:
		return &Column{kind: KindFloat, f: v}, nil
	case float32:
		return &Column{kind: KindFloat, f: float64(v)}, nil
	case time.Time:
		return &Column{kind: KindDate, t: v}, nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return &Column{kind: KindDate, t: *v}, nil
	}
	if i, ok := conv.ToInt64(raw); ok {
		return &Column{kind: KindInt, i: i}, nil
	}
	if u, ok := raw.(uint64); ok {
		return &Column{kind: KindFloat, f: float64(u)}, nil
	}
	return nil, typeError(fmt.Sprintf("column: unsupported raw value type %T", raw))
}

// MustOf 与 Of 相同，但遇到不支持的类型时 panic，用于测试与常量构造。
func MustOf(raw any) *Column {
	c, err := Of(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// Kind 返回原始值类型；nil Column 返回 KindAbsent。
func (c *Column) Kind() Kind {
	if c == nil {
		return KindAbsent
	}
	return c.kind
}

// IsAbsent 报告字段是否缺失。
func (c *Column) IsAbsent() bool {
	return c == nil || c.kind == KindAbsent
}

// Raw 返回归一化后的原始值；absent 返回 nil。
func (c *Column) Raw() any {
	switch c.Kind() {
	case KindText:
		return c.s
	case KindInt:
		return c.i
	case KindFloat:
		return c.f
	case KindBool:
		return c.b
	case KindDate:
		return c.t
	default:
		return nil
	}
}

func (c *Column) String() string {
	if c.IsAbsent() {
		return "<absent>"
	}
	s, _ := c.AsString()
	return s
}

// AsString 文本原样返回；数值按最短表示格式化；日期格式化为 RFC3339Nano。
func (c *Column) AsString() (string, error) {
	switch c.Kind() {
	case KindText:
		return c.s, nil
	case KindInt:
		return strconv.FormatInt(c.i, 10), nil
	case KindFloat:
		return strconv.FormatFloat(c.f, 'g', -1, 64), nil
	case KindBool:
		return strconv.FormatBool(c.b), nil
	case KindDate:
		return c.t.Format(time.RFC3339Nano), nil
	default:
		return "", c.conversionError("string")
	}
}

// AsInt 整数原样返回；浮点仅在没有小数部分且不溢出时转换；文本按十进制严格解析。
func (c *Column) AsInt() (int64, error) {
	switch c.Kind() {
	case KindInt:
		return c.i, nil
	case KindFloat:
		if c.f != math.Trunc(c.f) || c.f < math.MinInt64 || c.f >= math.MaxInt64 {
			return 0, c.conversionError("int")
		}
		return int64(c.f), nil
	case KindText:
		i, err := strconv.ParseInt(strings.TrimSpace(c.s), 10, 64)
		if err != nil {
			return 0, c.conversionError("int")
		}
		return i, nil
	default:
		return 0, c.conversionError("int")
	}
}

// AsDouble 数值转为 float64；文本按浮点严格解析。
func (c *Column) AsDouble() (float64, error) {
	switch c.Kind() {
	case KindFloat:
		return c.f, nil
	case KindInt:
		return float64(c.i), nil
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.s), 64)
		if err != nil {
			return 0, c.conversionError("double")
		}
		return f, nil
	default:
		return 0, c.conversionError("double")
	}
}

// AsDate 日期原样返回；文本依次按 RFC3339、"2006-01-02 15:04:05"、"2006-01-02" 解析。
// 数值不会被当作时间戳隐式转换。
func (c *Column) AsDate() (time.Time, error) {
	switch c.Kind() {
	case KindDate:
		return c.t, nil
	case KindText:
		s := strings.TrimSpace(c.s)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, c.conversionError("date")
	default:
		return time.Time{}, c.conversionError("date")
	}
}

// AsBool 布尔原样返回；文本按 strconv.ParseBool 解析。
func (c *Column) AsBool() (bool, error) {
	switch c.Kind() {
	case KindBool:
		return c.b, nil
	case KindText:
		b, err := strconv.ParseBool(strings.TrimSpace(c.s))
		if err != nil {
			return false, c.conversionError("bool")
		}
		return b, nil
	default:
		return false, c.conversionError("bool")
	}
}

func (c *Column) conversionError(target string) error {
	if c.IsAbsent() {
		return typeError("column: absent value cannot be read as " + target)
	}
	return typeError(fmt.Sprintf("column: %s value %q cannot be read as %s", c.kind, c.String(), target))
}

func typeError(msg string) error {
	return core.NewDomainError(core.ModuleColumn, core.ErrorCodeColumnType, msg)
}
