package metrics

import (
	"fmt"

	"signal-metrics/internal/signal"
)

// Trade 表示一笔已完成的往返交易，平仓后不再变更。
type Trade struct {
	EntryIndex int
	EntryPrice float64
	ExitIndex  int
	ExitPrice  float64
	Return     float64
	Profitable bool
}

// Position 为持仓状态的显式表示: 空仓，或携带入场信息的多头。
// 零值即空仓。
type Position struct {
	Long       bool
	EntryIndex int
	EntryPrice float64
}

// Apply 施加一个信号并返回转移后的状态。
// Flat+Buy 开仓，Long+Sell 平仓并产出交易，其余组合不改变状态。
func (p Position) Apply(sig signal.Signal, index int, price float64) (Position, Trade, bool) {
	switch {
	case !p.Long && sig == signal.Buy:
		return Position{Long: true, EntryIndex: index, EntryPrice: price}, Trade{}, false
	case p.Long && sig == signal.Sell:
		ret := (price - p.EntryPrice) / p.EntryPrice
		trade := Trade{
			EntryIndex: p.EntryIndex,
			EntryPrice: p.EntryPrice,
			ExitIndex:  index,
			ExitPrice:  price,
			Return:     ret,
			Profitable: ret > 0,
		}
		return Position{}, trade, true
	default:
		return p, Trade{}, false
	}
}

// TradesFromSignals 顺序扫描收盘价与按位置对齐的信号序列，
// 生成按平仓顺序排列的往返交易。
// 前置条件: 序列首元素不参与评估，起点不存在可供转移的前置状态。
// 扫描结束时若仍持有多头，该持仓不产生交易，作为第二个返回值交由调用方处理。
func TradesFromSignals(closes []float64, signals []signal.Signal) ([]Trade, *Position, error) {
	if len(closes) != len(signals) {
		return nil, nil, fmt.Errorf("价格与信号长度不一致: %d vs %d", len(closes), len(signals))
	}

	var trades []Trade
	var pos Position

	for i := 1; i < len(closes); i++ {
		next, trade, closed := pos.Apply(signals[i], i, closes[i])
		if closed {
			trades = append(trades, trade)
		}
		pos = next
	}

	if pos.Long {
		open := pos
		return trades, &open, nil
	}

	return trades, nil, nil
}
