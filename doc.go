// Package scorekit 是一个文档排序打分工具包。
//
// 设计要点：
// - Column-first: 字段值统一包装为 Column，按需转换为文本/整数/浮点/布尔/日期
// - Rule 由有序的 (字段, Function) 与一个 JoinMode 组成，贡献序列按 JoinMode 归约为分数
// - Pipeline 串联加载、打分、截断 Node，自定义 Node 即可插拔扩展
package scorekit

import (
	"github.com/rushteam/scorekit/aggregate"
	"github.com/rushteam/scorekit/pipeline"
)

// 轻量 facade：便于用户直接 import "scorekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind
type JoinMode = aggregate.JoinMode

const (
	KindLoad  = pipeline.KindLoad
	KindScore = pipeline.KindScore
	KindTrunc = pipeline.KindTrunc
)

const (
	First    = aggregate.First
	Avg      = aggregate.Avg
	Max      = aggregate.Max
	Sum      = aggregate.Sum
	Min      = aggregate.Min
	Multiply = aggregate.Multiply
)
