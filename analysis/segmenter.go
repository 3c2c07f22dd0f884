package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-ego/gse"
)

// Segmenter 是基于 gse 词典分词的 Analyzer，适用于中文及中英混合文本。
//
// 词典在构造时一次性加载，之后只读，Cut 可以被并发调用。
type Segmenter struct {
	seg gse.Segmenter
	hmm bool
}

// SegmenterOption Segmenter 配置选项
type SegmenterOption func(*Segmenter)

// WithHMM 设置是否启用 HMM 识别未登录词（默认启用）
func WithHMM(enable bool) SegmenterOption {
	return func(s *Segmenter) {
		s.hmm = enable
	}
}

// NewSegmenter 加载词典并创建 Segmenter。
// dicts 为空时使用编译进二进制的 gse 中文词典（简体+繁体），不依赖本地文件；
// 否则按文件路径加载（多个文件以逗号拼接交给 gse）。词典加载失败返回 ANALYZER_UNAVAILABLE。
func NewSegmenter(dicts []string, opts ...SegmenterOption) (*Segmenter, error) {
	var (
		seg gse.Segmenter
		err error
	)
	if len(dicts) == 0 {
		seg, err = gse.NewEmbed("zh")
	} else {
		seg, err = gse.New(strings.Join(dicts, ","))
	}
	if err != nil {
		return nil, Unavailable(fmt.Errorf("load gse dictionary: %w", err))
	}
	s := &Segmenter{seg: seg, hmm: true}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Segmenter) ExtractWords(ctx context.Context, text string, minLength int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, Unavailable(err)
	}
	if text == "" {
		return []string{}, nil
	}
	return filterWords(s.seg.Cut(text, s.hmm), minLength), nil
}

var _ Analyzer = (*Segmenter)(nil)
