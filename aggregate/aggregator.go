// Package aggregate 把多个 Function 产出的数值贡献按 JoinMode 归约为一个分数。
//
// 所有运算均为 float64。贡献序列保持排序规则中 Function 的声明顺序：
// FIRST 取首个元素，MAX/MIN 在并列时保留最先出现的极值。
// NaN/±Inf 不做防护，是对 Function 输出的前置约束。
package aggregate

import (
	"fmt"
	"math"
	"slices"

	"github.com/rushteam/scorekit/core"
)

// policy 描述一个 JoinMode 的归约方式与空输入策略。
// identity 为 nil 表示该模式没有单位元，空输入返回 EMPTY_INPUT。
type policy struct {
	reduce   func(xs []float64) float64
	identity *float64
}

func identityOf(v float64) *float64 { return &v }

var policies = [...]policy{
	First:    {reduce: reduceFirst},
	Avg:      {reduce: reduceAvg},
	Max:      {reduce: reduceMax},
	Sum:      {reduce: reduceSum, identity: identityOf(0)},
	Min:      {reduce: reduceMin},
	Multiply: {reduce: reduceMultiply, identity: identityOf(1)},
}

// 新增 JoinMode 而未补齐归约策略时编译失败。
var (
	_ [len(policies) - int(joinModeCount)]struct{}
	_ [int(joinModeCount) - len(policies)]struct{}
)

// Aggregator 是无状态的归约器，绑定一个 JoinMode。零值使用 FIRST。
type Aggregator struct {
	Mode JoinMode
}

// New 创建绑定 mode 的 Aggregator。
func New(mode JoinMode) Aggregator {
	return Aggregator{Mode: mode}
}

// Reduce 按 a.Mode 归约贡献序列。
func (a Aggregator) Reduce(contributions []float64) (float64, error) {
	return Reduce(contributions, a.Mode)
}

// Reduce 按 mode 归约贡献序列。
//
//   - FIRST/AVG/MAX/MIN：空序列返回 EMPTY_INPUT 错误
//   - SUM：空序列返回 0
//   - MULTIPLY：空序列返回 1
//   - 单元素序列在所有模式下原样返回该元素
func Reduce(contributions []float64, mode JoinMode) (float64, error) {
	if !mode.Valid() {
		return 0, invalidMode(mode)
	}
	p := policies[mode]
	if len(contributions) == 0 {
		if p.identity == nil {
			return 0, core.NewDomainError(core.ModuleAggregate, core.ErrorCodeEmptyInput,
				fmt.Sprintf("aggregate: %s over empty contributions", mode))
		}
		return *p.identity, nil
	}
	if len(contributions) == 1 {
		return contributions[0], nil
	}
	return p.reduce(contributions), nil
}

func reduceFirst(xs []float64) float64 {
	return xs[0]
}

// reduceAvg 中间和溢出时改为逐项 x/n 累加，有限输入的均值保持有限。
func reduceAvg(xs []float64) float64 {
	n := float64(len(xs))
	s := reduceSum(xs)
	if !math.IsInf(s, 0) {
		return s / n
	}
	var scaled float64
	for _, x := range canonical(xs) {
		scaled += x / n
	}
	return scaled
}

// reduceMax 严格大于才替换，并列时保留最先出现的最大值。
func reduceMax(xs []float64) float64 {
	best := xs[0]
	for _, x := range xs[1:] {
		if x > best {
			best = x
		}
	}
	return best
}

// reduceMin 严格小于才替换，并列时保留最先出现的最小值。
func reduceMin(xs []float64) float64 {
	best := xs[0]
	for _, x := range xs[1:] {
		if x < best {
			best = x
		}
	}
	return best
}

// reduceSum 先按值排序再累加，结果与贡献的排列无关。
func reduceSum(xs []float64) float64 {
	var s float64
	for _, x := range canonical(xs) {
		s += x
	}
	return s
}

// reduceMultiply 同 reduceSum，按值排序后累乘。
func reduceMultiply(xs []float64) float64 {
	p := 1.0
	for _, x := range canonical(xs) {
		p *= x
	}
	return p
}

// canonical 返回按值升序排列的副本，不修改调用方的切片。
func canonical(xs []float64) []float64 {
	out := slices.Clone(xs)
	slices.Sort(out)
	return out
}
