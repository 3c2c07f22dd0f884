// Package analysis 定义打分核心所依赖的分词器契约，并提供几种现成的适配实现。
//
// 核心只消费 Analyzer 接口，不自行实现分词算法：
//   - Segmenter：基于 gse 词典的中文/混合文本切词
//   - Simple：按 Unicode 字母/数字切分的空格语言切词
//   - RPC：调用远程分词服务
//
// 所有实现必须对相同输入给出相同输出，并允许多个打分 goroutine 并发调用。
package analysis

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rushteam/scorekit/core"
)

// Analyzer 把文本切分为有序的词序列，过滤掉长度（按 rune 计）小于 minLength 的词。
// 失败时返回的错误应能被 core.IsAnalyzerUnavailable 识别。
type Analyzer interface {
	ExtractWords(ctx context.Context, text string, minLength int) ([]string, error)
}

// Func 把普通函数适配为 Analyzer，便于测试注入。
type Func func(ctx context.Context, text string, minLength int) ([]string, error)

func (f Func) ExtractWords(ctx context.Context, text string, minLength int) ([]string, error) {
	return f(ctx, text, minLength)
}

// Unavailable 把任意分词失败包装为 ANALYZER_UNAVAILABLE；已是该类错误时原样返回。
func Unavailable(err error) error {
	if err == nil || core.IsAnalyzerUnavailable(err) {
		return err
	}
	return core.WrapDomainError(core.ModuleAnalysis, core.ErrorCodeAnalyzerUnavailable, "analyzer unavailable", err)
}

// ErrNoAnalyzer 表示需要分词的 Function 未注入 Analyzer。
var ErrNoAnalyzer = core.NewDomainError(core.ModuleAnalysis, core.ErrorCodeAnalyzerUnavailable, "analyzer not configured")

// filterWords 去掉空白/纯标点的词以及长度不足 minLength 的词，保持原有顺序。
func filterWords(words []string, minLength int) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || !hasLetterOrDigit(w) {
			continue
		}
		if utf8.RuneCountInString(w) < minLength {
			continue
		}
		out = append(out, w)
	}
	return out
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
