package exchange

import "time"

// Candle 代表单根K线。
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// RangeRequest 控制一次区间K线拉取的参数。
// Timeframe 与 PageLimit 为必填项，默认值统一由配置层提供。
type RangeRequest struct {
	Timeframe string
	Start     time.Time
	End       time.Time
	PageLimit int
}
