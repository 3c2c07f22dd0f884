package function

import (
	"context"
	"fmt"

	"github.com/rushteam/scorekit/analysis"
	"github.com/rushteam/scorekit/column"
)

// TokenCount 统计字段文本经 Analyzer 切分后的词数。
//
// 字段缺失时返回 0；否则按字符串读取字段，调用 Analyzer.ExtractWords(text, MinLength)，
// 返回词的个数。Analyzer 未注入或调用失败时返回 ANALYZER_UNAVAILABLE。
type TokenCount struct {
	Analyzer  analysis.Analyzer
	MinLength int
}

// NewTokenCount 创建词数特征
func NewTokenCount(analyzer analysis.Analyzer, minLength int) *TokenCount {
	return &TokenCount{Analyzer: analyzer, MinLength: minLength}
}

func (f *TokenCount) Name() string {
	return fmt.Sprintf("token_count(min=%d)", f.MinLength)
}

func (f *TokenCount) Apply(ctx context.Context, col *column.Column) (float64, error) {
	if col.IsAbsent() {
		return 0, nil
	}
	text, err := col.AsString()
	if err != nil {
		return 0, err
	}
	if f.Analyzer == nil {
		return 0, analysis.ErrNoAnalyzer
	}
	words, err := f.Analyzer.ExtractWords(ctx, text, f.MinLength)
	if err != nil {
		return 0, analysis.Unavailable(err)
	}
	return float64(len(words)), nil
}

var _ Function = (*TokenCount)(nil)
