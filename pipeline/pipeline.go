package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/scorekit/core"
)

// Pipeline 把打分逻辑拆成可组合的 Node 链，按顺序执行。
type Pipeline struct {
	Nodes []Node
}

// New 创建 Pipeline
func New(nodes ...Node) *Pipeline {
	return &Pipeline{Nodes: nodes}
}

// Run 依次执行各 Node；任一 Node 失败即返回，错误中带有 Node 名称。
func (p *Pipeline) Run(ctx context.Context, docs []*core.Document) ([]*core.Document, error) {
	cur := docs
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", node.Kind(), node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}
