package function

import (
	"context"
	"math"
	"unicode/utf8"

	"github.com/rushteam/scorekit/column"
)

// Numeric 直接把字段读取为 float64。
//
// 字段缺失时返回 Default；设置了 Min/Max 时把结果截断到 [Min, Max]。
// 非数值文本返回 COLUMN_TYPE 错误。
type Numeric struct {
	Default float64
	Min     *float64
	Max     *float64
}

// NumericOption Numeric 配置选项
type NumericOption func(*Numeric)

// WithDefault 设置字段缺失时的默认值
func WithDefault(v float64) NumericOption {
	return func(f *Numeric) {
		f.Default = v
	}
}

// WithBounds 设置截断区间
func WithBounds(lo, hi float64) NumericOption {
	return func(f *Numeric) {
		f.Min = &lo
		f.Max = &hi
	}
}

// NewNumeric 创建数值特征
func NewNumeric(opts ...NumericOption) *Numeric {
	f := &Numeric{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Numeric) Name() string { return "numeric" }

func (f *Numeric) Apply(_ context.Context, col *column.Column) (float64, error) {
	if col.IsAbsent() {
		return f.Default, nil
	}
	v, err := col.AsDouble()
	if err != nil {
		return 0, err
	}
	if f.Min != nil {
		v = math.Max(v, *f.Min)
	}
	if f.Max != nil {
		v = math.Min(v, *f.Max)
	}
	return v, nil
}

// TextLength 返回字段文本的字符数（按 rune 计）。字段缺失时返回 0。
type TextLength struct{}

func (TextLength) Name() string { return "text_length" }

func (TextLength) Apply(_ context.Context, col *column.Column) (float64, error) {
	if col.IsAbsent() {
		return 0, nil
	}
	s, err := col.AsString()
	if err != nil {
		return 0, err
	}
	return float64(utf8.RuneCountInString(s)), nil
}

var (
	_ Function = (*Numeric)(nil)
	_ Function = TextLength{}
)
