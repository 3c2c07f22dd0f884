package pipeline

import (
	"context"

	"github.com/rushteam/scorekit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindLoad  Kind = "load"  // 加载阶段：为文档补齐打分所需字段
	KindScore Kind = "score" // 打分阶段：按排序规则计算分数并排序
	KindTrunc Kind = "trunc" // 截断阶段：Top-N / 最低分
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 docs -> 输出 docs”的形态，加载、打分、截断都可以表达为 Node。
type Node interface {
	Name() string
	Kind() Kind

	Process(ctx context.Context, docs []*core.Document) ([]*core.Document, error)
}
