package function

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rushteam/scorekit/analysis"
	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pkg/conv"
)

// Deps 是构建 Function 时注入的外部能力。
type Deps struct {
	// Analyzer 供文本类 Function 使用（如 token_count）
	Analyzer analysis.Analyzer

	// Reference 是时间类 Function 的参考时刻；为零值时使用构建时刻
	Reference time.Time
}

// Builder 根据配置构建 Function。
// 各抽取器在 init 中调用 Register(typeName, builder) 即可被配置驱动。
type Builder func(cfg map[string]any, deps Deps) (Function, error)

var (
	builders   = make(map[string]Builder)
	buildersMu sync.RWMutex
)

func init() {
	Register("token_count", buildTokenCount)
	Register("numeric", buildNumeric)
	Register("recency", buildRecency)
	Register("text_length", buildTextLength)
	Register("expression", buildExpression)
}

// Register 注册一种 Function 的构建逻辑；同名注册会覆盖旧的构建器。
func Register(typeName string, builder Builder) {
	if typeName == "" || builder == nil {
		return
	}
	buildersMu.Lock()
	defer buildersMu.Unlock()
	builders[typeName] = builder
}

// SupportedTypes 返回当前已注册的 Function 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	buildersMu.RLock()
	defer buildersMu.RUnlock()
	types := make([]string, 0, len(builders))
	for t := range builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Build 根据类型和配置构建 Function。
func Build(typeName string, cfg map[string]any, deps Deps) (Function, error) {
	buildersMu.RLock()
	builder, ok := builders[typeName]
	buildersMu.RUnlock()
	if !ok {
		return nil, core.NewDomainError(core.ModuleFunction, core.ErrorCodeNotSupported,
			fmt.Sprintf("unsupported function type %q (supported: %v)", typeName, SupportedTypes()))
	}
	return builder(cfg, deps)
}

func buildTokenCount(cfg map[string]any, deps Deps) (Function, error) {
	if deps.Analyzer == nil {
		return nil, analysis.ErrNoAnalyzer
	}
	minLength := conv.ConfigGetInt64(cfg, "min_length", 0)
	if minLength < 0 {
		return nil, invalidConfig("token_count: min_length must not be negative")
	}
	return NewTokenCount(deps.Analyzer, int(minLength)), nil
}

func buildNumeric(cfg map[string]any, _ Deps) (Function, error) {
	f := NewNumeric(WithDefault(conv.ConfigGetFloat64(cfg, "default", 0)))
	if v, ok := conv.ToFloat64(cfg["min"]); ok {
		f.Min = &v
	}
	if v, ok := conv.ToFloat64(cfg["max"]); ok {
		f.Max = &v
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return nil, invalidConfig("numeric: min must not exceed max")
	}
	return f, nil
}

func buildRecency(cfg map[string]any, deps Deps) (Function, error) {
	halfLife := conv.ConfigGetDuration(cfg, "half_life", 0)
	ref := deps.Reference
	if s := conv.ConfigGet(cfg, "reference", ""); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, invalidConfig(fmt.Sprintf("recency: reference %q is not RFC3339", s))
		}
		ref = t
	}
	if ref.IsZero() {
		ref = time.Now()
	}
	f, err := NewRecency(ref, halfLife)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func buildTextLength(map[string]any, Deps) (Function, error) {
	return TextLength{}, nil
}

func buildExpression(cfg map[string]any, _ Deps) (Function, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, invalidConfig("expression: expr is required")
	}
	f, err := NewExpression(expr, conv.ConfigGetFloat64(cfg, "default", 0))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func invalidConfig(msg string) error {
	return core.NewDomainError(core.ModuleFunction, core.ErrorCodeInvalidInput, msg)
}
