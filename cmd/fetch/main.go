package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"signal-metrics/internal/config"
	"signal-metrics/internal/exchange"
	"signal-metrics/internal/log"
	"signal-metrics/internal/series"
)

// 常见计价币后缀，用于把 BTCUSDT 这类文件命名转换为 ccxt 统一符号。
var quoteSuffixes = []string{"USDT", "USDC", "BUSD", "BTC", "ETH"}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "配置文件路径，默认使用 configs/config.yaml")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, symbol := range cfg.Data.Symbols {
		if err := fetchSymbol(ctx, cfg, symbol, logger); err != nil {
			logger.Error("下载K线失败", zap.String("symbol", symbol), zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("历史K线下载完成", zap.Int("symbols", len(cfg.Data.Symbols)))
}

func fetchSymbol(ctx context.Context, cfg *config.Config, symbol string, logger *zap.Logger) error {
	client, err := exchange.NewClient(cfg.Exchange, marketSymbol(symbol), logger)
	if err != nil {
		return fmt.Errorf("初始化行情客户端失败: %w", err)
	}

	// 未配置完整时间窗口时退化为单页快照，只拉取最近的K线。
	var candles []exchange.Candle
	if cfg.Fetch.StartTime.IsZero() || cfg.Fetch.EndTime.IsZero() {
		logger.Info("未配置拉取窗口，改为拉取最近K线",
			zap.String("symbol", symbol),
			zap.Int("limit", cfg.Fetch.PageLimit),
		)
		candles, err = client.FetchCandles(ctx, cfg.Data.SourceInterval, int64(cfg.Fetch.PageLimit))
	} else {
		candles, err = client.FetchCandlesRange(ctx, exchange.RangeRequest{
			Timeframe: cfg.Data.SourceInterval,
			Start:     cfg.Fetch.StartTime,
			End:       cfg.Fetch.EndTime,
			PageLimit: cfg.Fetch.PageLimit,
		})
	}
	if err != nil {
		return err
	}

	path := filepath.Join(
		cfg.Data.CandleDir,
		series.FileName(symbol, cfg.Data.SourceInterval, cfg.Data.Source),
	)
	if err := series.Save(path, series.New(candles)); err != nil {
		return err
	}

	logger.Info("已保存K线序列",
		zap.String("symbol", symbol),
		zap.String("path", path),
		zap.Int("candles", len(candles)),
	)

	return nil
}

func marketSymbol(symbol string) string {
	if strings.Contains(symbol, "/") {
		return symbol
	}
	for _, quote := range quoteSuffixes {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			return symbol[:len(symbol)-len(quote)] + "/" + quote
		}
	}
	return symbol
}
