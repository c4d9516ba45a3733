package series

import (
	"time"

	"signal-metrics/internal/exchange"
)

// Series 将K线数据拆分为便于计算的并行序列，按时间升序排列。
type Series struct {
	Timestamps []time.Time
	Open       []float64
	High       []float64
	Low        []float64
	Close      []float64
	Volume     []float64
}

// New 从交易所K线创建 Series。
func New(candles []exchange.Candle) Series {
	length := len(candles)
	s := Series{
		Timestamps: make([]time.Time, length),
		Open:       make([]float64, length),
		High:       make([]float64, length),
		Low:        make([]float64, length),
		Close:      make([]float64, length),
		Volume:     make([]float64, length),
	}

	for i := 0; i < length; i++ {
		candle := candles[i]
		s.Timestamps[i] = candle.Timestamp.UTC()
		s.Open[i] = candle.Open
		s.High[i] = candle.High
		s.Low[i] = candle.Low
		s.Close[i] = candle.Close
		s.Volume[i] = candle.Volume
	}

	return s
}

// Len 返回序列长度。
func (s Series) Len() int {
	return len(s.Close)
}

// Empty 判断序列是否为空。
func (s Series) Empty() bool {
	return s.Len() == 0
}

func (s *Series) append(ts time.Time, open, high, low, close, volume float64) {
	s.Timestamps = append(s.Timestamps, ts)
	s.Open = append(s.Open, open)
	s.High = append(s.High, high)
	s.Low = append(s.Low, low)
	s.Close = append(s.Close, close)
	s.Volume = append(s.Volume, volume)
}
