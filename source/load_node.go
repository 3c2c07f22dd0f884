package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pipeline"
)

// LoadNode 是加载字段的 Pipeline Node：
// 从 Source 批量读取字段并合并进 Document.Fields，已有字段会被覆盖。
type LoadNode struct {
	Source FieldSource
	Logger *slog.Logger
}

func NewLoadNode(src FieldSource) *LoadNode {
	return &LoadNode{Source: src}
}

func (n *LoadNode) Name() string { return "source." + n.Source.Name() }

func (n *LoadNode) Kind() pipeline.Kind { return pipeline.KindLoad }

func (n *LoadNode) Process(ctx context.Context, docs []*core.Document) ([]*core.Document, error) {
	if len(docs) == 0 {
		return docs, nil
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	fields, err := n.Source.Fields(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}

	missing := 0
	for _, d := range docs {
		f, ok := fields[d.ID]
		if !ok {
			missing++
			continue
		}
		for k, v := range f {
			d.PutField(k, v)
		}
	}
	n.logger().DebugContext(ctx, "fields loaded",
		slog.String("source", n.Source.Name()),
		slog.Int("docs", len(docs)),
		slog.Int("missing", missing),
	)
	return docs, nil
}

func (n *LoadNode) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

var _ pipeline.Node = (*LoadNode)(nil)
