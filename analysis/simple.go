package analysis

import (
	"context"
	"strings"
	"unicode"
)

// Simple 按非字母/数字字符切分文本并转为小写，适合英文等以空格分词的语言。
// 连续的汉字会被视为一个词，中文文本请使用 Segmenter。
type Simple struct{}

func (Simple) ExtractWords(_ context.Context, text string, minLength int) ([]string, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return filterWords(fields, minLength), nil
}

var _ Analyzer = Simple{}
