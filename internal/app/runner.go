package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"signal-metrics/internal/ai"
	"signal-metrics/internal/config"
	"signal-metrics/internal/metrics"
	"signal-metrics/internal/series"
	"signal-metrics/internal/signal"
	"signal-metrics/internal/store"
)

// runner 以并发池方式对多个交易对独立执行绩效计算。
// 每个交易对只读取自身的序列，互相之间没有共享可变状态。
type runner struct {
	cfg     *config.Config
	logger  *zap.Logger
	reports *store.ReportStore
	analyst *ai.Client

	mu        sync.Mutex
	failures  error
	succeeded int
	skipped   int
}

func newRunner(cfg *config.Config, logger *zap.Logger, reports *store.ReportStore, analyst *ai.Client) *runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &runner{
		cfg:     cfg,
		logger:  logger,
		reports: reports,
		analyst: analyst,
	}
}

// RunAll 并发处理配置中的全部交易对。
// 周期描述符非法属于配置错误，立即中止; 单个交易对的数据缺失
// 只记录警告并跳过，其余交易对继续执行。
func (r *runner) RunAll(ctx context.Context) error {
	interval := r.cfg.Backtest.Interval
	if _, err := metrics.PeriodsPerYear(interval); err != nil {
		return fmt.Errorf("回测周期非法: %w", err)
	}

	if err := os.MkdirAll(r.cfg.Backtest.OutputDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Backtest.Workers)

	for _, symbol := range r.cfg.Data.Symbols {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			r.runSymbol(groupCtx, symbol)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	r.logger.Info("批量回测完成",
		zap.Int("total", len(r.cfg.Data.Symbols)),
		zap.Int("succeeded", r.succeeded),
		zap.Int("skipped", r.skipped),
	)

	if r.succeeded == 0 && r.failures != nil {
		return fmt.Errorf("全部交易对处理失败: %w", r.failures)
	}
	if r.failures != nil {
		r.logger.Warn("部分交易对处理失败", zap.Error(r.failures))
	}

	return nil
}

func (r *runner) runSymbol(ctx context.Context, symbol string) {
	path := filepath.Join(
		r.cfg.Data.CandleDir,
		series.FileName(symbol, r.cfg.Data.SourceInterval, r.cfg.Data.Source),
	)

	s, err := series.Load(path)
	if err != nil {
		r.logger.Warn("读取序列失败，跳过该交易对",
			zap.String("symbol", symbol),
			zap.String("path", path),
			zap.Error(err),
		)
		r.markSkipped()
		return
	}

	if r.cfg.Backtest.Interval != r.cfg.Data.SourceInterval {
		s, err = series.Resample(s, r.cfg.Backtest.Interval)
		if err != nil {
			r.recordFailure(symbol, fmt.Errorf("重采样失败: %w", err))
			return
		}
	}

	signals := signal.EMACrossover(s.Close, r.cfg.Strategy.FastPeriod, r.cfg.Strategy.SlowPeriod)

	report, err := metrics.Calculate(s, signals, r.cfg.Backtest.Interval, metrics.Options{
		AnnualizationFactor: r.cfg.Backtest.AnnualizationFactor,
	})
	if err != nil {
		r.recordFailure(symbol, fmt.Errorf("计算绩效失败: %w", err))
		return
	}

	if err := r.writeReportFile(symbol, report); err != nil {
		r.recordFailure(symbol, err)
		return
	}

	if err := r.reports.Save(ctx, symbol, r.cfg.Backtest.Interval, r.cfg.Data.Source, report); err != nil {
		r.recordFailure(symbol, err)
		return
	}

	r.logger.Info("绩效计算完成",
		zap.String("symbol", symbol),
		zap.Int("bars", s.Len()),
		zap.Float64("sharpe", report.Sharpe),
		zap.Float64("max_drawdown", report.MaxDrawdown),
		zap.Float64("win_rate", report.WinRate),
		zap.Float64("num_trades", report.NumTrades),
		zap.Bool("open_position", report.OpenPosition),
	)

	if r.analyst != nil {
		summary, err := r.analyst.Summarize(ctx, symbol, report)
		if err != nil {
			r.logger.Warn("生成AI点评失败", zap.String("symbol", symbol), zap.Error(err))
		} else {
			r.logger.Info("AI点评", zap.String("symbol", symbol), zap.String("summary", summary))
		}
	}

	r.markSucceeded()
}

func (r *runner) writeReportFile(symbol string, report metrics.Report) error {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化报告失败: %w", err)
	}

	name := fmt.Sprintf("%s_%s_report.json", symbol, r.cfg.Backtest.Interval)
	path := filepath.Join(r.cfg.Backtest.OutputDir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("写入报告文件失败: %w", err)
	}

	return nil
}

func (r *runner) recordFailure(symbol string, err error) {
	r.logger.Error("交易对处理失败", zap.String("symbol", symbol), zap.Error(err))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = multierr.Append(r.failures, fmt.Errorf("%s: %w", symbol, err))
}

func (r *runner) markSucceeded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.succeeded++
}

func (r *runner) markSkipped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped++
}
