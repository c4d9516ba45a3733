package metrics

import (
	"math"
	"time"

	"signal-metrics/internal/series"
	"signal-metrics/internal/signal"
)

// Options 控制一次指标计算的可选参数。
type Options struct {
	// AnnualizationFactor 大于0时覆盖默认的 sqrt(periods_per_year)。
	AnnualizationFactor float64
}

// Report 为一次回测的完整绩效记录，JSON字段名与报表格式保持一致。
// 比率字段保留4位小数，胜率保留2位。
type Report struct {
	Sharpe            float64 `json:"SR"`
	Calmar            float64 `json:"CR"`
	MaxDrawdown       float64 `json:"MDD"`
	Sortino           float64 `json:"sortino_ratio"`
	AnnualReturn      float64 `json:"AR"`
	NumTrades         float64 `json:"num_of_trades"`
	TotalReturn       float64 `json:"TR"`
	TradesPerInterval float64 `json:"trades_per_interval"`
	DrawdownDays      float64 `json:"MDD_MAX_DURATION_IN_DAY"`
	SharpeCalmar      float64 `json:"SR_CR"`
	WinRate           float64 `json:"win_rate"`
	StartDate         string  `json:"backtest_start_date"`
	EndDate           string  `json:"backtest_end_date"`
	InDrawdown        bool    `json:"in_drawdown"`
	OpenPosition      bool    `json:"open_position"`
}

// Calculate 将价格序列与按位置对齐的信号序列转化为绩效记录。
// 空序列或没有任何成交的信号得到零值记录而非错误;
// 周期描述符非法时计算中止并返回错误。
func Calculate(s series.Series, signals []signal.Signal, interval string, opts Options) (Report, error) {
	periodsPerYear, err := PeriodsPerYear(interval)
	if err != nil {
		return Report{}, err
	}
	factor := AnnualizationFactor(periodsPerYear, opts.AnnualizationFactor)

	trades, open, err := TradesFromSignals(s.Close, signals)
	if err != nil {
		return Report{}, err
	}

	stats := BuildReturnStats(trades)

	exitTimes := make([]time.Time, len(trades))
	for i, t := range trades {
		exitTimes[i] = s.Timestamps[t.ExitIndex]
	}
	dd := AnalyzeDrawdown(stats.Returns, exitTimes)

	sharpe := 0.0
	if stats.StdReturn != 0 {
		sharpe = stats.MeanReturn / stats.StdReturn * factor
	}

	downside := make([]float64, 0, len(stats.Returns))
	for _, r := range stats.Returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	sortino := 0.0
	if dsStd := sampleStd(downside); len(downside) > 0 && dsStd != 0 {
		sortino = stats.MeanReturn / dsStd * factor
	}

	calmar := 0.0
	if dd.MaxDrawdown != 0 {
		calmar = stats.MeanReturn * periodsPerYear / math.Abs(dd.MaxDrawdown)
	}

	sharpeCalmar := 0.0
	if calmar != 0 {
		sharpeCalmar = sharpe / calmar
	}

	tradesPerInterval := 0.0
	if s.Len() > 0 {
		tradesPerInterval = float64(stats.NumTrades) / float64(s.Len())
	}

	winRate := 0.0
	if stats.NumTrades > 0 {
		winRate = float64(stats.Wins) / float64(stats.NumTrades) * 100
	}

	report := Report{
		Sharpe:            round4(sharpe),
		Calmar:            round4(calmar),
		MaxDrawdown:       round4(dd.MaxDrawdown),
		Sortino:           round4(sortino),
		AnnualReturn:      round4(stats.MeanReturn * periodsPerYear),
		NumTrades:         float64(stats.NumTrades),
		TotalReturn:       round4(stats.TotalReturn),
		TradesPerInterval: round4(tradesPerInterval),
		DrawdownDays:      round4(dd.DurationDays),
		SharpeCalmar:      round4(sharpeCalmar),
		WinRate:           round2(winRate),
		InDrawdown:        !dd.Recovered,
		OpenPosition:      open != nil,
	}

	if !s.Empty() {
		report.StartDate = s.Timestamps[0].UTC().Format(time.RFC3339)
		report.EndDate = s.Timestamps[s.Len()-1].UTC().Format(time.RFC3339)
	}

	return report, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
