package aggregate

import (
	"fmt"
	"strings"

	"github.com/rushteam/scorekit/core"
)

// JoinMode 描述如何把一组按声明顺序排列的数值贡献合成为一个分数。
// 取值集合是封闭的，每个取值在 policies 中都必须有对应的归约与空输入策略。
type JoinMode int

const (
	First JoinMode = iota
	Avg
	Max
	Sum
	Min
	Multiply

	joinModeCount
)

var joinModeNames = [...]string{
	First:    "FIRST",
	Avg:      "AVG",
	Max:      "MAX",
	Sum:      "SUM",
	Min:      "MIN",
	Multiply: "MULTIPLY",
}

// 新增 JoinMode 而未补齐名称时编译失败。
var (
	_ [len(joinModeNames) - int(joinModeCount)]struct{}
	_ [int(joinModeCount) - len(joinModeNames)]struct{}
)

// Modes 按声明顺序返回全部 JoinMode。
func Modes() []JoinMode {
	modes := make([]JoinMode, 0, joinModeCount)
	for m := JoinMode(0); m < joinModeCount; m++ {
		modes = append(modes, m)
	}
	return modes
}

// Valid 报告 m 是否为已定义的 JoinMode。
func (m JoinMode) Valid() bool {
	return m >= 0 && m < joinModeCount
}

func (m JoinMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("JoinMode(%d)", int(m))
	}
	return joinModeNames[m]
}

// ParseJoinMode 按名称解析 JoinMode，大小写不敏感。
func ParseJoinMode(s string) (JoinMode, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for m, n := range joinModeNames {
		if n == name {
			return JoinMode(m), nil
		}
	}
	return 0, core.NewDomainError(core.ModuleAggregate, core.ErrorCodeInvalidInput,
		fmt.Sprintf("unknown join mode %q (supported: %s)", s, strings.Join(joinModeNames[:], ", ")))
}

// MarshalText 实现 encoding.TextMarshaler，YAML/JSON 中以名称表示。
func (m JoinMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, invalidMode(m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler。
func (m *JoinMode) UnmarshalText(text []byte) error {
	parsed, err := ParseJoinMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func invalidMode(m JoinMode) error {
	return core.NewDomainError(core.ModuleAggregate, core.ErrorCodeInvalidInput,
		fmt.Sprintf("invalid join mode %d", int(m)))
}
