package series

import (
	"fmt"
	"time"
)

// 可重采样的目标周期，与数据源的命名保持一致。
var resampleDurations = map[string]time.Duration{
	"1h":  time.Hour,
	"2h":  2 * time.Hour,
	"4h":  4 * time.Hour,
	"8h":  8 * time.Hour,
	"12h": 12 * time.Hour,
	"1d":  24 * time.Hour,
}

// ResampleIntervals 返回支持的目标周期列表。
func ResampleIntervals() []string {
	return []string{"1h", "2h", "4h", "8h", "12h", "1d"}
}

// Resample 将细粒度序列聚合为指定的更粗周期。
// 聚合规则: open取首值, high取最大, low取最小, close取末值, volume求和。
// 没有任何K线落入的桶不会出现在结果中。
func Resample(s Series, interval string) (Series, error) {
	bucketSize, ok := resampleDurations[interval]
	if !ok {
		return Series{}, fmt.Errorf("不支持的重采样周期 %q, 可选 %v", interval, ResampleIntervals())
	}

	var out Series
	if s.Empty() {
		return out, nil
	}

	var (
		bucketStart time.Time
		open        float64
		high        float64
		low         float64
		closePrice  float64
		volume      float64
		started     bool
	)

	flush := func() {
		if started {
			out.append(bucketStart, open, high, low, closePrice, volume)
		}
	}

	for i := 0; i < s.Len(); i++ {
		ts := s.Timestamps[i].UTC().Truncate(bucketSize)

		if !started || !ts.Equal(bucketStart) {
			flush()
			bucketStart = ts
			open = s.Open[i]
			high = s.High[i]
			low = s.Low[i]
			closePrice = s.Close[i]
			volume = s.Volume[i]
			started = true
			continue
		}

		if s.High[i] > high {
			high = s.High[i]
		}
		if s.Low[i] < low {
			low = s.Low[i]
		}
		closePrice = s.Close[i]
		volume += s.Volume[i]
	}
	flush()

	return out, nil
}
