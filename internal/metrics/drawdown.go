package metrics

import (
	"math"
	"time"
)

// Drawdown 描述累计收益曲线的最大回撤区间。
// MaxDrawdown 恒不为正; 曲线未回到峰值时 RecoveryIndex 等于 TroughIndex
// 且 Recovered 为 false。
type Drawdown struct {
	MaxDrawdown   float64
	StartIndex    int
	TroughIndex   int
	RecoveryIndex int
	Recovered     bool
	DurationDays  float64
}

// AnalyzeDrawdown 基于逐笔回报及其平仓时间计算最大回撤。
// returns 与 exitTimes 按平仓顺序一一对应; 时间缺失时持续天数为0。
func AnalyzeDrawdown(returns []float64, exitTimes []time.Time) Drawdown {
	if len(returns) == 0 {
		return Drawdown{Recovered: true}
	}

	cumulative := make([]float64, len(returns))
	runningMax := make([]float64, len(returns))
	sum := 0.0
	peak := math.Inf(-1)
	for i, r := range returns {
		sum += r
		cumulative[i] = sum
		if sum > peak {
			peak = sum
		}
		runningMax[i] = peak
	}

	// 谷底取回撤首次达到最小值的位置。
	trough := 0
	maxDD := 0.0
	for i := range cumulative {
		if dd := cumulative[i] - runningMax[i]; dd < maxDD {
			maxDD = dd
			trough = i
		}
	}

	// 从谷底向前找最后一个处于峰值的点作为回撤起点。
	start := 0
	for i := trough - 1; i >= 0; i-- {
		if cumulative[i] == runningMax[i] {
			start = i
			break
		}
	}

	// 从谷底向后找首个重回峰值的点; 找不到则回撤在观测期内未恢复。
	recovery := trough
	recovered := false
	for i := trough; i < len(cumulative); i++ {
		if cumulative[i] >= runningMax[trough] {
			recovery = i
			recovered = true
			break
		}
	}

	days := 0.0
	if start < len(exitTimes) && recovery < len(exitTimes) {
		startTs := exitTimes[start]
		recoveryTs := exitTimes[recovery]
		if !startTs.IsZero() && !recoveryTs.IsZero() {
			days = recoveryTs.Sub(startTs).Seconds() / 86400
		}
	}

	return Drawdown{
		MaxDrawdown:   maxDD,
		StartIndex:    start,
		TroughIndex:   trough,
		RecoveryIndex: recovery,
		Recovered:     recovered,
		DurationDays:  days,
	}
}
