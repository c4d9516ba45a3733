package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"signal-metrics/internal/ai"
	"signal-metrics/internal/config"
	"signal-metrics/internal/store"
)

// App 聚合核心依赖并驱动一次批量回测。
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// New 创建 App 实例。
func New(cfg *config.Config, logger *zap.Logger, store *store.Store) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}
}

// Run 对配置中的全部交易对执行绩效计算。
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("回测系统已初始化",
		zap.String("environment", a.cfg.App.Environment),
		zap.Strings("symbols", a.cfg.Data.Symbols),
		zap.String("interval", a.cfg.Backtest.Interval),
		zap.Int("workers", a.cfg.Backtest.Workers),
	)

	reports, err := store.NewReportStore(a.store.DB(), a.logger)
	if err != nil {
		return fmt.Errorf("初始化报告存储失败: %w", err)
	}

	var analyst *ai.Client
	if a.cfg.OpenAI.APIKey != "" {
		analyst, err = ai.NewClient(a.cfg.OpenAI, a.logger)
		if err != nil {
			return fmt.Errorf("初始化AI客户端失败: %w", err)
		}
		a.logger.Info("已启用AI报告点评", zap.String("model", a.cfg.OpenAI.Model))
	}

	r := newRunner(a.cfg, a.logger, reports, analyst)
	return r.RunAll(ctx)
}
