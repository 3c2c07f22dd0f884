// Package source 负责为待打分的文档加载字段。
package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/scorekit/core"
)

// FieldSource 按文档 ID 批量返回字段。
// 结果中缺失的 ID 表示该文档在数据源中不存在，不视为错误。
type FieldSource interface {
	Name() string
	Fields(ctx context.Context, ids []string) (map[string]map[string]any, error)
}

// StoreSource 从 KeyValueStore 读取文档字段：每篇文档一个 Hash，
// key 为 KeyPrefix+ID，Hash 的 field/value 即文档的字段名/字段文本。
type StoreSource struct {
	Store     core.KeyValueStore
	KeyPrefix string

	// Concurrency 为并发读取的上限，<=0 表示不限制
	Concurrency int
}

func NewStoreSource(store core.KeyValueStore, keyPrefix string) *StoreSource {
	return &StoreSource{Store: store, KeyPrefix: keyPrefix, Concurrency: 16}
}

func (s *StoreSource) Name() string { return "store:" + s.Store.Name() }

func (s *StoreSource) Fields(ctx context.Context, ids []string) (map[string]map[string]any, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]map[string]any, len(ids))
	)
	g, gctx := errgroup.WithContext(ctx)
	if s.Concurrency > 0 {
		g.SetLimit(s.Concurrency)
	}
	for _, id := range ids {
		g.Go(func() error {
			hash, err := s.Store.HGetAll(gctx, s.KeyPrefix+id)
			if err != nil {
				return fmt.Errorf("load %s: %w", id, err)
			}
			if len(hash) == 0 {
				return nil
			}
			fields := make(map[string]any, len(hash))
			for k, v := range hash {
				fields[k] = string(v)
			}
			mu.Lock()
			out[id] = fields
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Put 将文档字段写入 Store，值以文本形式保存，读回后可被 Column 按原类型解析。
// 空值（nil 或 nil *time.Time）不写入。
func (s *StoreSource) Put(ctx context.Context, doc *core.Document) error {
	key := s.KeyPrefix + doc.ID
	for name, v := range doc.Fields {
		data, ok := encodeField(v)
		if !ok {
			continue
		}
		if err := s.Store.HSet(ctx, key, name, data); err != nil {
			return fmt.Errorf("put %s.%s: %w", doc.ID, name, err)
		}
	}
	return nil
}

// encodeField 日期按 RFC3339Nano 编码，与 Column.AsDate 的解析格式一致。
func encodeField(v any) ([]byte, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case time.Time:
		return []byte(val.Format(time.RFC3339Nano)), true
	case *time.Time:
		if val == nil {
			return nil, false
		}
		return []byte(val.Format(time.RFC3339Nano)), true
	case []byte:
		return val, true
	case string:
		return []byte(val), true
	default:
		return []byte(fmt.Sprint(val)), true
	}
}

var _ FieldSource = (*StoreSource)(nil)
