package rank

import (
	"context"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pipeline"
)

// TopNNode 在打分排序之后截断结果，通常紧跟 ScoreNode。
//
//	pipeline.New(
//	    source.NewLoadNode(src),
//	    rank.NewScoreNode(r, 8),
//	    &rank.TopNNode{N: 20},
//	)
type TopNNode struct {
	// N <= 0 表示不按数量截断
	N int

	// MinScore 非 nil 时丢弃分数低于它的文档；NaN 分数同样被丢弃
	MinScore *float64
}

func (n *TopNNode) Name() string { return "rank.topn" }

func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindTrunc }

func (n *TopNNode) Process(_ context.Context, docs []*core.Document) ([]*core.Document, error) {
	out := docs
	if n.MinScore != nil {
		out = make([]*core.Document, 0, len(docs))
		for _, d := range docs {
			if d.Score >= *n.MinScore {
				out = append(out, d)
			}
		}
	}
	if n.N > 0 && len(out) > n.N {
		out = out[:n.N]
	}
	return out, nil
}

var _ pipeline.Node = (*TopNNode)(nil)
