package signal

// Signal 表示单根K线上的策略指令。
type Signal int8

const (
	// Hold 保持现状，不做任何操作。
	Hold Signal = 0
	// Buy 在当前收盘价建立多头仓位。
	Buy Signal = 1
	// Sell 在当前收盘价平掉多头仓位。
	Sell Signal = -1
)

// String 返回信号的可读名称。
func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}
