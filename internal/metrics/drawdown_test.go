package metrics

import (
	"math"
	"testing"
	"time"
)

func dailyTimes(n int) []time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, n)
	for i := range times {
		times[i] = base.Add(time.Duration(i) * 24 * time.Hour)
	}
	return times
}

func TestAnalyzeDrawdown_Empty(t *testing.T) {
	dd := AnalyzeDrawdown(nil, nil)
	if dd.MaxDrawdown != 0 || dd.StartIndex != 0 || dd.TroughIndex != 0 || dd.RecoveryIndex != 0 {
		t.Errorf("empty curve must yield zero result, got %+v", dd)
	}
	if !dd.Recovered {
		t.Errorf("empty curve must count as recovered")
	}
	if dd.DurationDays != 0 {
		t.Errorf("empty curve duration = %v, want 0", dd.DurationDays)
	}
}

func TestAnalyzeDrawdown_Unrecovered(t *testing.T) {
	// 累计曲线 [0.10, -0.20], 回撤 [0, -0.30], 未恢复。
	returns := []float64{0.10, -0.30}
	times := dailyTimes(2)

	dd := AnalyzeDrawdown(returns, times)

	if diff := math.Abs(dd.MaxDrawdown - (-0.30)); diff > 1e-12 {
		t.Errorf("max drawdown = %v, want -0.30", dd.MaxDrawdown)
	}
	if dd.TroughIndex != 1 {
		t.Errorf("trough = %d, want 1", dd.TroughIndex)
	}
	if dd.StartIndex != 0 {
		t.Errorf("start = %d, want 0", dd.StartIndex)
	}
	if dd.RecoveryIndex != dd.TroughIndex {
		t.Errorf("unrecovered drawdown must keep recovery at trough, got %d", dd.RecoveryIndex)
	}
	if dd.Recovered {
		t.Errorf("expected unrecovered drawdown")
	}
	if diff := math.Abs(dd.DurationDays - 1); diff > 1e-12 {
		t.Errorf("duration = %v days, want 1", dd.DurationDays)
	}
}

func TestAnalyzeDrawdown_Recovered(t *testing.T) {
	// 累计曲线 [0.10, -0.20, 0.20]: 在第三笔交易处重回峰值之上。
	returns := []float64{0.10, -0.30, 0.40}
	times := dailyTimes(3)

	dd := AnalyzeDrawdown(returns, times)

	if diff := math.Abs(dd.MaxDrawdown - (-0.30)); diff > 1e-12 {
		t.Errorf("max drawdown = %v, want -0.30", dd.MaxDrawdown)
	}
	if dd.StartIndex != 0 || dd.TroughIndex != 1 || dd.RecoveryIndex != 2 {
		t.Errorf("unexpected indices: %+v", dd)
	}
	if !dd.Recovered {
		t.Errorf("expected recovered drawdown")
	}
	if diff := math.Abs(dd.DurationDays - 2); diff > 1e-12 {
		t.Errorf("duration = %v days, want 2", dd.DurationDays)
	}
}

func TestAnalyzeDrawdown_MonotonicCurve(t *testing.T) {
	returns := []float64{0.10, 0.20, 0.05}

	dd := AnalyzeDrawdown(returns, dailyTimes(3))

	if dd.MaxDrawdown != 0 {
		t.Errorf("monotonic curve drawdown = %v, want 0", dd.MaxDrawdown)
	}
	if dd.StartIndex != 0 || dd.TroughIndex != 0 || dd.RecoveryIndex != 0 {
		t.Errorf("monotonic curve indices must coincide at 0, got %+v", dd)
	}
	if !dd.Recovered {
		t.Errorf("monotonic curve must count as recovered")
	}
	if dd.DurationDays != 0 {
		t.Errorf("duration = %v, want 0", dd.DurationDays)
	}
}

func TestAnalyzeDrawdown_FirstMinimumWins(t *testing.T) {
	// 回撤序列 [0, -0.5, 0, -0.5]: 谷底取首次出现的最小值。
	returns := []float64{0.25, -0.5, 0.5, -0.5}

	dd := AnalyzeDrawdown(returns, dailyTimes(4))

	if dd.TroughIndex != 1 {
		t.Errorf("trough = %d, want first minimum at 1", dd.TroughIndex)
	}
	if dd.RecoveryIndex != 2 || !dd.Recovered {
		t.Errorf("expected recovery at 2, got %+v", dd)
	}
}

func TestAnalyzeDrawdown_MissingTimestamps(t *testing.T) {
	dd := AnalyzeDrawdown([]float64{0.10, -0.30}, nil)
	if dd.DurationDays != 0 {
		t.Errorf("missing timestamps must yield zero duration, got %v", dd.DurationDays)
	}
}
