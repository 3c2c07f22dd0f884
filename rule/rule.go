// Package rule 把有序的 Function 引用与一个 JoinMode 组合成排序规则。
package rule

import (
	"context"
	"fmt"

	"github.com/rushteam/scorekit/aggregate"
	"github.com/rushteam/scorekit/column"
	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/function"
)

// Term 是规则中的一项：对文档的 Field 字段应用 Function。
type Term struct {
	Field    string
	Function function.Function
}

// Rule 是排序规则：Terms 的声明顺序即贡献序列的顺序，
// FIRST 与 MAX/MIN 的并列处理都依赖这一顺序。
// Rule 构建后只读，可被多个打分 goroutine 共享。
type Rule struct {
	Name  string
	Terms []Term
	Mode  aggregate.JoinMode
}

// New 创建排序规则
func New(name string, mode aggregate.JoinMode, terms ...Term) *Rule {
	return &Rule{Name: name, Terms: terms, Mode: mode}
}

// Contributions 按声明顺序对文档计算每一项的特征值。
// 文档缺失的字段以 absent Column 传给 Function。
func (r *Rule) Contributions(ctx context.Context, doc *core.Document) ([]float64, error) {
	out := make([]float64, 0, len(r.Terms))
	for i, term := range r.Terms {
		if term.Function == nil {
			return nil, core.NewDomainError(core.ModuleRule, core.ErrorCodeInvalidInput,
				fmt.Sprintf("rule %s: term %d (%s) has no function", r.Name, i, term.Field))
		}
		raw, _ := doc.Field(term.Field)
		col, err := column.Of(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", term.Field, err)
		}
		v, err := term.Function.Apply(ctx, col)
		if err != nil {
			return nil, fmt.Errorf("%s on field %s: %w", term.Function.Name(), term.Field, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Score 计算文档的最终分数：各项贡献按 r.Mode 归约。
func (r *Rule) Score(ctx context.Context, doc *core.Document) (float64, error) {
	contributions, err := r.Contributions(ctx, doc)
	if err != nil {
		return 0, err
	}
	score, err := aggregate.Reduce(contributions, r.Mode)
	if err != nil {
		return 0, fmt.Errorf("rule %s: %w", r.Name, err)
	}
	return score, nil
}
