package signal

import (
	talib "github.com/markcheno/go-talib"
)

// EMACrossover 基于快慢EMA交叉生成与收盘价等长的信号序列。
// 快线上穿慢线产生 Buy，下穿产生 Sell，其余位置为 Hold。
// 序列长度不足慢线周期时返回全 Hold。
func EMACrossover(closes []float64, fastPeriod, slowPeriod int) []Signal {
	signals := make([]Signal, len(closes))
	if fastPeriod <= 0 || slowPeriod <= 0 || fastPeriod >= slowPeriod {
		return signals
	}
	if len(closes) <= slowPeriod {
		return signals
	}

	fast := talib.Ema(closes, fastPeriod)
	slow := talib.Ema(closes, slowPeriod)

	// talib 在暖机区间输出0值，跳过慢线尚未成形的部分。
	for i := slowPeriod; i < len(closes); i++ {
		prevDiff := fast[i-1] - slow[i-1]
		diff := fast[i] - slow[i]
		switch {
		case prevDiff <= 0 && diff > 0:
			signals[i] = Buy
		case prevDiff >= 0 && diff < 0:
			signals[i] = Sell
		}
	}

	return signals
}
