package analysis

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/rushteam/scorekit/core"
)

// Cached 用 core.Store 缓存内层 Analyzer 的结果，适合包装 RPC 等较慢的实现。
// 缓存读写失败不影响分词结果，只会退化为直接调用内层 Analyzer；
// Store 为 nil 时不缓存。
type Cached struct {
	Analyzer Analyzer
	Store    core.Store
	Prefix   string // 默认 "analysis:"
	TTL      int    // 秒，<=0 表示不过期
}

func NewCached(inner Analyzer, store core.Store, ttl int) *Cached {
	return &Cached{Analyzer: inner, Store: store, TTL: ttl}
}

func (c *Cached) ExtractWords(ctx context.Context, text string, minLength int) ([]string, error) {
	if c.Analyzer == nil {
		return nil, ErrNoAnalyzer
	}
	if c.Store == nil {
		words, err := c.Analyzer.ExtractWords(ctx, text, minLength)
		return words, Unavailable(err)
	}
	key := c.key(text, minLength)
	if data, err := c.Store.Get(ctx, key); err == nil {
		var words []string
		if json.Unmarshal(data, &words) == nil {
			return words, nil
		}
	}

	words, err := c.Analyzer.ExtractWords(ctx, text, minLength)
	if err != nil {
		return nil, Unavailable(err)
	}
	if data, err := json.Marshal(words); err == nil {
		_ = c.Store.Set(ctx, key, data, c.TTL)
	}
	return words, nil
}

func (c *Cached) key(text string, minLength int) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = "analysis:"
	}
	return prefix + strconv.Itoa(minLength) + ":" + strconv.FormatUint(xxhash.Sum64String(text), 16)
}
