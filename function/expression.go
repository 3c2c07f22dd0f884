package function

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/scorekit/column"
	"github.com/rushteam/scorekit/core"
	"github.com/rushteam/scorekit/pkg/conv"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境。表达式中可用的变量：
//   - value：字段归一化后的原始值（string/int/double/bool/timestamp）
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("value", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Expression 用 CEL (Common Expression Language) 表达式从字段计算特征值。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：double(value) * 0.5 / value > 100 ? 1.0 : 0.0
//   - 文本：size(value) / value.contains("促销") ? 1.0 : 0.0
//   - 时间：double(value.getFullYear())
//
// 表达式在构造时编译，编译后的 Program 不可变，可并发求值。
// 字段缺失时返回 Default；求值失败或结果不是数值时返回 COLUMN_TYPE 错误。
type Expression struct {
	Expr    string
	Default float64
	prg     cel.Program
}

// NewExpression 编译表达式并创建特征。编译失败返回 INVALID_INPUT。
func NewExpression(expr string, defaultVal float64) (*Expression, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, core.WrapDomainError(core.ModuleFunction, core.ErrorCodeInvalidInput,
			fmt.Sprintf("expression %q: compile error", expr), issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleFunction, core.ErrorCodeInvalidInput,
			fmt.Sprintf("expression %q: program error", expr), err)
	}
	return &Expression{Expr: expr, Default: defaultVal, prg: prg}, nil
}

func (f *Expression) Name() string { return "expression(" + f.Expr + ")" }

func (f *Expression) Apply(_ context.Context, col *column.Column) (float64, error) {
	if col.IsAbsent() {
		return f.Default, nil
	}
	out, _, err := f.prg.Eval(map[string]any{"value": col.Raw()})
	if err != nil {
		return 0, core.WrapDomainError(core.ModuleFunction, core.ErrorCodeColumnType,
			fmt.Sprintf("expression %q on %s value", f.Expr, col.Kind()), err)
	}
	v, ok := conv.ToFloat64(out.Value())
	if !ok {
		return 0, core.NewDomainError(core.ModuleFunction, core.ErrorCodeColumnType,
			fmt.Sprintf("expression %q must return a number, got %T", f.Expr, out.Value()))
	}
	return v, nil
}

var _ Function = (*Expression)(nil)
