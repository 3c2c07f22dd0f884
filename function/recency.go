package function

import (
	"context"
	"math"
	"time"

	"github.com/rushteam/scorekit/column"
	"github.com/rushteam/scorekit/core"
)

// Recency 是基于日期字段的时间衰减特征：score = 2^(-age/HalfLife)。
//
// age 以固定的 Reference 时刻计算，保证同一输入总是得到同一分数；
// 晚于 Reference 的日期得分为 1，字段缺失时返回 0。
type Recency struct {
	Reference time.Time
	HalfLife  time.Duration
}

// NewRecency 创建时间衰减特征。halfLife 必须为正。
func NewRecency(reference time.Time, halfLife time.Duration) (*Recency, error) {
	if halfLife <= 0 {
		return nil, core.NewDomainError(core.ModuleFunction, core.ErrorCodeInvalidInput, "recency: half life must be positive")
	}
	return &Recency{Reference: reference, HalfLife: halfLife}, nil
}

func (f *Recency) Name() string { return "recency(" + f.HalfLife.String() + ")" }

func (f *Recency) Apply(_ context.Context, col *column.Column) (float64, error) {
	if col.IsAbsent() {
		return 0, nil
	}
	t, err := col.AsDate()
	if err != nil {
		return 0, err
	}
	age := f.Reference.Sub(t)
	if age <= 0 {
		return 1, nil
	}
	return math.Exp2(-float64(age) / float64(f.HalfLife)), nil
}

var _ Function = (*Recency)(nil)
