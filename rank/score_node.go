// Package rank 提供按排序规则打分、排序与截断的 Pipeline Node。
package rank

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pipeline"
	"github.com/rushteam/scorekit/rule"
)

// ScoreNode 按 Rule 为每个文档打分并按分数降序（稳定）排序。
// 任一文档打分失败则整批失败，不会为失败文档填充默认分。
//
//	node := &rank.ScoreNode{Rule: r, Concurrency: 8, Metrics: rank.NewMetrics()}
type ScoreNode struct {
	Rule *rule.Rule

	// Concurrency 为并发打分的上限，<=0 表示串行
	Concurrency int

	Metrics *Metrics
	Logger  *slog.Logger
}

func NewScoreNode(r *rule.Rule, concurrency int) *ScoreNode {
	return &ScoreNode{Rule: r, Concurrency: concurrency}
}

func (n *ScoreNode) Name() string { return "rank.score:" + n.Rule.Name }

func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *ScoreNode) Process(ctx context.Context, docs []*core.Document) ([]*core.Document, error) {
	if len(docs) == 0 {
		return docs, nil
	}
	start := time.Now()

	scores := make([]float64, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	limit := n.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, doc := range docs {
		g.Go(func() error {
			s, err := n.Rule.Score(gctx, doc)
			if err != nil {
				return fmt.Errorf("doc %s: %w", doc.ID, err)
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		n.Metrics.incError(n.Rule.Name, err)
		n.logger().WarnContext(ctx, "score batch failed",
			slog.String("rule", n.Rule.Name),
			slog.Int("docs", len(docs)),
			slog.Any("error", err),
		)
		return nil, err
	}

	out := make([]*core.Document, len(docs))
	for i, doc := range docs {
		doc.Score = scores[i]
		out[i] = doc
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	elapsed := time.Since(start)
	n.Metrics.addScored(n.Rule.Name, len(docs))
	n.Metrics.observe(n.Rule.Name, elapsed.Seconds())
	n.logger().DebugContext(ctx, "score batch done",
		slog.String("rule", n.Rule.Name),
		slog.Int("docs", len(docs)),
		slog.Duration("elapsed", elapsed),
	)
	return out, nil
}

func (n *ScoreNode) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

var _ pipeline.Node = (*ScoreNode)(nil)
