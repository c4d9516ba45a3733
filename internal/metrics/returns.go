package metrics

import "math"

// ReturnStats 汇总逐笔回报序列的统计量。
type ReturnStats struct {
	NumTrades   int
	TotalReturn float64
	MeanReturn  float64
	StdReturn   float64
	Wins        int
	Returns     []float64
}

// BuildReturnStats 从交易列表派生回报序列及其统计量。
// 标准差为样本标准差，交易不足两笔时为0。
func BuildReturnStats(trades []Trade) ReturnStats {
	stats := ReturnStats{
		NumTrades: len(trades),
		Returns:   make([]float64, 0, len(trades)),
	}

	for _, t := range trades {
		stats.Returns = append(stats.Returns, t.Return)
		stats.TotalReturn += t.Return
		if t.Profitable {
			stats.Wins++
		}
	}

	if stats.NumTrades > 0 {
		stats.MeanReturn = stats.TotalReturn / float64(stats.NumTrades)
	}
	stats.StdReturn = sampleStd(stats.Returns)

	return stats
}

// sampleStd 计算样本标准差，元素不足两个时返回0。
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)

	return math.Sqrt(variance)
}
