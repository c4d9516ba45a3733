package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	ccxt "github.com/ccxt/ccxt/go/v4"
	"go.uber.org/zap"

	"signal-metrics/internal/config"
)

// Client 负责与交易所交互并实现有界重试机制。
type Client struct {
	cfg      config.ExchangeConfig
	logger   *zap.Logger
	exchange *ccxt.Binance
	symbol   string

	marketsMu     sync.Mutex
	marketsLoaded bool
}

// NewClient 构造 Binance 现货行情客户端。
func NewClient(cfg config.ExchangeConfig, symbol string, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	userConfig := map[string]interface{}{
		"enableRateLimit": true,
		"options": map[string]interface{}{
			"adjustForTimeDifference": true,
			"defaultType":             "spot",
		},
	}

	if cfg.APIKey != "" {
		userConfig["apiKey"] = cfg.APIKey
	}
	if cfg.APISecret != "" {
		userConfig["secret"] = cfg.APISecret
	}

	ex := ccxt.NewBinance(userConfig)
	if cfg.UseSandbox {
		ex.SetSandboxMode(true)
	}

	return &Client{
		cfg:      cfg,
		logger:   logger,
		exchange: ex,
		symbol:   symbol,
	}, nil
}

// Symbol 返回交易对符号。
func (c *Client) Symbol() string {
	return c.symbol
}

// FetchCandles 获取指定周期最近的K线数据。
func (c *Client) FetchCandles(ctx context.Context, timeframe string, limit int64) ([]Candle, error) {
	if limit <= 0 {
		limit = 1
	}

	var raw []ccxt.OHLCV

	err := c.callWithRetry(ctx, fmt.Sprintf("fetch_ohlcv_%s", timeframe), func() error {
		if err := c.ensureMarketsLoaded(ctx); err != nil {
			return err
		}

		result, err := c.exchange.FetchOHLCV(
			c.symbol,
			ccxt.WithFetchOHLCVTimeframe(timeframe),
			ccxt.WithFetchOHLCVLimit(limit),
		)
		if err != nil {
			return err
		}

		raw = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return convertCandles(raw), nil
}

// FetchCandlesRange 按时间窗口分页拉取K线，返回升序且不超出窗口的序列。
func (c *Client) FetchCandlesRange(ctx context.Context, req RangeRequest) ([]Candle, error) {
	if req.Timeframe == "" {
		return nil, errors.New("拉取参数缺少 timeframe")
	}
	if req.PageLimit <= 0 {
		return nil, fmt.Errorf("page_limit 必须大于0: %d", req.PageLimit)
	}
	if !req.Start.Before(req.End) {
		return nil, fmt.Errorf("拉取窗口无效: start=%s end=%s", req.Start, req.End)
	}

	var candles []Candle
	since := req.Start.UnixMilli()
	endMs := req.End.UnixMilli()

	for since < endMs {
		var raw []ccxt.OHLCV

		err := c.callWithRetry(ctx, fmt.Sprintf("fetch_ohlcv_range_%s", req.Timeframe), func() error {
			if err := c.ensureMarketsLoaded(ctx); err != nil {
				return err
			}

			result, err := c.exchange.FetchOHLCV(
				c.symbol,
				ccxt.WithFetchOHLCVTimeframe(req.Timeframe),
				ccxt.WithFetchOHLCVSince(since),
				ccxt.WithFetchOHLCVLimit(int64(req.PageLimit)),
			)
			if err != nil {
				return err
			}

			raw = result
			return nil
		})
		if err != nil {
			return nil, err
		}

		if len(raw) == 0 {
			break
		}

		for _, item := range raw {
			if item.Timestamp >= endMs {
				break
			}
			candles = append(candles, Candle{
				Timestamp: time.UnixMilli(item.Timestamp).UTC(),
				Open:      item.Open,
				High:      item.High,
				Low:       item.Low,
				Close:     item.Close,
				Volume:    item.Volume,
			})
		}

		next := raw[len(raw)-1].Timestamp + 1
		if next <= since {
			break
		}
		since = next
	}

	c.logger.Debug("区间K线拉取完成",
		zap.String("symbol", c.symbol),
		zap.String("timeframe", req.Timeframe),
		zap.Int("candles", len(candles)),
	)

	return candles, nil
}

func (c *Client) ensureMarketsLoaded(ctx context.Context) error {
	if c.marketsLoaded {
		return nil
	}

	c.marketsMu.Lock()
	defer c.marketsMu.Unlock()

	if c.marketsLoaded {
		return nil
	}

	loadErr := c.callWithRetry(ctx, "load_markets", func() error {
		_, err := c.exchange.LoadMarkets()
		return err
	})
	if loadErr != nil {
		return loadErr
	}

	c.marketsLoaded = true
	c.logger.Info("已完成市场元数据加载", zap.String("symbol", c.symbol))
	return nil
}

func (c *Client) callWithRetry(ctx context.Context, operation string, fn func() error) error {
	attempt := 0
	delay := c.cfg.Retry.MinDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	maxDelay := c.cfg.Retry.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 5 * time.Second
	}

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		attempt++
		start := time.Now()
		err := fn()
		duration := time.Since(start)
		if err == nil {
			if attempt > 1 {
				c.logger.Info("交易所调用重试后成功",
					zap.String("operation", operation),
					zap.Int("attempts", attempt),
					zap.Duration("latency", duration),
				)
			}
			return nil
		}

		normalizedErr, retry := c.classifyError(err)

		if errors.Is(normalizedErr, ErrMaintenance) {
			c.logger.Warn("交易所维护中",
				zap.String("operation", operation),
				zap.Error(normalizedErr),
			)
			return normalizedErr
		}

		if !retry {
			c.logger.Error("交易所调用失败",
				zap.String("operation", operation),
				zap.Int("attempts", attempt),
				zap.Duration("latency", duration),
				zap.Error(normalizedErr),
			)
			return normalizedErr
		}

		if attempt >= c.cfg.Retry.MaxAttempts {
			c.logger.Error("交易所调用重试次数耗尽",
				zap.String("operation", operation),
				zap.Int("attempts", attempt),
				zap.Error(normalizedErr),
			)
			return fmt.Errorf("%w: %s: %v", ErrRetryExhausted, operation, normalizedErr)
		}

		wait := delay
		if wait > maxDelay {
			wait = maxDelay
		}

		c.logger.Warn("交易所调用失败，等待重试",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(normalizedErr),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
}

func (c *Client) classifyError(err error) (error, bool) {
	if err == nil {
		return nil, false
	}

	var ccxtErr *ccxt.Error
	if errors.As(err, &ccxtErr) && ccxtErr.Type == ccxt.OnMaintenanceErrType {
		message := strings.TrimSpace(ccxtErr.Message)
		if message == "" {
			message = "exchange under maintenance"
		}
		return fmt.Errorf("%w: %s", ErrMaintenance, message), false
	}

	return err, IsRetryable(err)
}

func convertCandles(raw []ccxt.OHLCV) []Candle {
	candles := make([]Candle, 0, len(raw))
	for _, item := range raw {
		candles = append(candles, Candle{
			Timestamp: time.UnixMilli(item.Timestamp).UTC(),
			Open:      item.Open,
			High:      item.High,
			Low:       item.Low,
			Close:     item.Close,
			Volume:    item.Volume,
		})
	}
	return candles
}
