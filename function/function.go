// Package function 定义特征抽取函数：把一个文档字段（Column）映射为特征值。
//
// 所有实现都必须是纯函数：无状态、无副作用，相同输入总是得到相同输出，
// 可被多个打分 goroutine 并发调用。每个实现自行声明字段缺失（absent）时的默认值，
// 除此之外的任何失败都以错误返回，不会被隐式替换成默认分数。
//
// 新的抽取器只需实现 Extractor 并通过 Register 注册，无需修改 aggregate 包。
package function

import (
	"context"

	"github.com/rushteam/scorekit/column"
)

// Extractor 是类型化特征抽取器的统一接口。
type Extractor[T any] interface {
	// Name 返回抽取器名称（用于日志/监控）
	Name() string

	// Apply 从 Column 计算特征值；col 为 nil 表示字段缺失
	Apply(ctx context.Context, col *column.Column) (T, error)
}

// Function 是排序规则使用的数值特征抽取器，其输出作为聚合的贡献值。
type Function = Extractor[float64]

// mapped 把 Extractor[T] 适配为 Function。
type mapped[T any] struct {
	inner   Extractor[T]
	convert func(T) float64
}

// Map 用 convert 把任意类型的 Extractor 适配为 Function，例如把布尔特征映射为 0/1。
func Map[T any](inner Extractor[T], convert func(T) float64) Function {
	return &mapped[T]{inner: inner, convert: convert}
}

func (m *mapped[T]) Name() string { return m.inner.Name() }

func (m *mapped[T]) Apply(ctx context.Context, col *column.Column) (float64, error) {
	v, err := m.inner.Apply(ctx, col)
	if err != nil {
		return 0, err
	}
	return m.convert(v), nil
}

// CustomFunction 允许用普通函数定义 Function。
type CustomFunction struct {
	name  string
	apply func(ctx context.Context, col *column.Column) (float64, error)
}

// NewCustomFunction 创建自定义 Function。apply 必须满足无状态与确定性约束。
func NewCustomFunction(name string, apply func(ctx context.Context, col *column.Column) (float64, error)) *CustomFunction {
	return &CustomFunction{name: name, apply: apply}
}

func (f *CustomFunction) Name() string { return f.name }

func (f *CustomFunction) Apply(ctx context.Context, col *column.Column) (float64, error) {
	if f.apply == nil {
		return 0, nil
	}
	return f.apply(ctx, col)
}
