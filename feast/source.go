// Package feast 通过 Feast 在线特征服务为文档加载字段。
//
// 每个文档 ID 作为一行实体（EntityKey=ID），请求的特征即文档字段：
//
//	src, _ := feast.NewSource("localhost", 6565, "news",
//	    feast.WithFeatures("doc_stats:clicks", "doc_stats:title"),
//	    feast.WithEntityKey("doc_id"),
//	)
//	node := source.NewLoadNode(src)
package feast

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	"github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/source"
)

// OnlineClient 是 Source 依赖的最小 Feast 客户端接口，*feastsdk.GrpcClient 满足该接口。
type OnlineClient interface {
	GetOnlineFeatures(ctx context.Context, req *feastsdk.OnlineFeaturesRequest) (*feastsdk.OnlineFeaturesResponse, error)
}

// Source 是基于 Feast 在线特征的 source.FieldSource。
type Source struct {
	client    OnlineClient
	project   string
	features  []string
	entityKey string
	keepRef   bool
	entityVal func(id string) *types.Value
}

type Option func(*Source)

// WithFeatures 设置需要获取的特征引用，例如 "doc_stats:clicks"。
func WithFeatures(features ...string) Option {
	return func(s *Source) { s.features = append(s.features, features...) }
}

// WithEntityKey 设置实体列名，默认 "doc_id"。
func WithEntityKey(key string) Option {
	return func(s *Source) { s.entityKey = key }
}

// WithFeatureRefNames 保留完整特征引用作为字段名（"doc_stats:clicks"），
// 默认只保留冒号之后的特征名（"clicks"）。
func WithFeatureRefNames() Option {
	return func(s *Source) { s.keepRef = true }
}

// WithInt64Entity 将文档 ID 按 int64 实体发送（实体列为 INT64 类型时使用）。
func WithInt64Entity() Option {
	return func(s *Source) {
		s.entityVal = func(id string) *types.Value {
			n, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return feastsdk.StrVal(id)
			}
			return feastsdk.Int64Val(n)
		}
	}
}

// NewSource 连接 Feast Serving（gRPC），port 为 0 时使用默认端口 6565。
func NewSource(host string, port int, project string, opts ...Option) (*Source, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("connect feast %s:%d: %w", host, port, err)
	}
	return NewSourceFromClient(client, project, opts...), nil
}

// NewSourceFromClient 使用已有客户端创建 Source。
func NewSourceFromClient(client OnlineClient, project string, opts ...Option) *Source {
	s := &Source{
		client:    client,
		project:   project,
		entityKey: "doc_id",
		entityVal: feastsdk.StrVal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Name() string { return "feast:" + s.project }

func (s *Source) Fields(ctx context.Context, ids []string) (map[string]map[string]any, error) {
	if len(ids) == 0 {
		return map[string]map[string]any{}, nil
	}
	if len(s.features) == 0 {
		return nil, core.NewDomainError(core.ModuleSource, core.ErrorCodeInvalidInput, "feast: no features configured")
	}

	rows := make([]feastsdk.Row, len(ids))
	for i, id := range ids {
		rows[i] = feastsdk.Row{s.entityKey: s.entityVal(id)}
	}
	resp, err := s.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: s.features,
		Entities: rows,
		Project:  s.project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast get online features: %w", err)
	}

	got := resp.Rows()
	if len(got) != len(ids) {
		return nil, fmt.Errorf("feast: row count mismatch: expected %d, got %d", len(ids), len(got))
	}
	out := make(map[string]map[string]any, len(ids))
	for i, row := range got {
		fields := make(map[string]any, len(s.features))
		for _, ref := range s.features {
			v := fromValue(row[ref])
			if v == nil {
				continue
			}
			fields[s.fieldName(ref)] = v
		}
		if len(fields) > 0 {
			out[ids[i]] = fields
		}
	}
	return out, nil
}

func (s *Source) fieldName(ref string) string {
	if s.keepRef {
		return ref
	}
	if i := strings.LastIndexByte(ref, ':'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func (s *Source) Close() error {
	if c, ok := s.client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// fromValue 把 Feast 的 Value 转为 Column 可接受的原始值；空值返回 nil（字段缺失）。
// 列表类型原样返回切片，打分时会得到 COLUMN_TYPE 错误。
func fromValue(v *types.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.GetVal().(type) {
	case *types.Value_StringVal:
		return val.StringVal
	case *types.Value_BytesVal:
		return val.BytesVal
	case *types.Value_Int32Val:
		return val.Int32Val
	case *types.Value_Int64Val:
		return val.Int64Val
	case *types.Value_DoubleVal:
		return val.DoubleVal
	case *types.Value_FloatVal:
		return val.FloatVal
	case *types.Value_BoolVal:
		return val.BoolVal
	case *types.Value_StringListVal:
		return val.StringListVal.GetVal()
	case *types.Value_Int64ListVal:
		return val.Int64ListVal.GetVal()
	case *types.Value_DoubleListVal:
		return val.DoubleListVal.GetVal()
	default:
		return nil
	}
}

var _ source.FieldSource = (*Source)(nil)
