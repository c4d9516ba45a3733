package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Config 聚合了系统运行所需的全部配置项。
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Data     DataConfig     `mapstructure:"data"`
	Backtest BacktestConfig `mapstructure:"backtest"`
	Strategy StrategyConfig `mapstructure:"strategy"`
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AppConfig 控制应用级参数。
type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// DataConfig 描述本地K线数据的位置与命名。
type DataConfig struct {
	CandleDir      string   `mapstructure:"candle_dir"`
	Symbols        []string `mapstructure:"symbols"`
	SourceInterval string   `mapstructure:"source_interval"`
	Source         string   `mapstructure:"source"`
}

// BacktestConfig 控制一次批量回测的参数。
type BacktestConfig struct {
	Interval            string  `mapstructure:"interval"`
	Workers             int     `mapstructure:"workers"`
	OutputDir           string  `mapstructure:"output_dir"`
	AnnualizationFactor float64 `mapstructure:"annualization_factor"`
}

// StrategyConfig 控制信号生成策略参数。
type StrategyConfig struct {
	FastPeriod int `mapstructure:"fast_period"`
	SlowPeriod int `mapstructure:"slow_period"`
}

// ExchangeConfig 描述交易所连接信息。
type ExchangeConfig struct {
	Name       string      `mapstructure:"name"`
	APIKey     string      `mapstructure:"api_key"`
	APISecret  string      `mapstructure:"api_secret"`
	UseSandbox bool        `mapstructure:"use_sandbox"`
	Retry      RetryConfig `mapstructure:"retry"`
}

// RetryConfig 统一控制重试机制。
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	MinDelay    time.Duration `mapstructure:"min_delay"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
}

// FetchConfig 控制历史K线下载窗口。
type FetchConfig struct {
	StartTime time.Time `mapstructure:"start_time"`
	EndTime   time.Time `mapstructure:"end_time"`
	PageLimit int       `mapstructure:"page_limit"`
}

// OpenAIConfig 描述大模型调用参数，api_key 为空时禁用点评功能。
type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig 管理数据库连接。
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	InMemory        bool          `mapstructure:"in_memory"`
}

// LoggingConfig 控制日志输出。
type LoggingConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Validate 对配置进行基本校验。
func (c *Config) Validate() error {
	var err error

	if c.App.Environment == "" {
		err = multierr.Append(err, errors.New("app.environment 不能为空"))
	}
	if c.Data.CandleDir == "" {
		err = multierr.Append(err, errors.New("data.candle_dir 不能为空"))
	}
	if len(c.Data.Symbols) == 0 {
		err = multierr.Append(err, errors.New("data.symbols 至少包含一个交易对"))
	}
	if c.Data.SourceInterval == "" {
		err = multierr.Append(err, errors.New("data.source_interval 不能为空"))
	}
	if c.Data.Source == "" {
		err = multierr.Append(err, errors.New("data.source 不能为空"))
	}
	if c.Backtest.Interval == "" {
		err = multierr.Append(err, errors.New("backtest.interval 不能为空"))
	}
	if c.Backtest.Workers <= 0 {
		err = multierr.Append(err, errors.New("backtest.workers 必须大于0"))
	}
	if c.Backtest.OutputDir == "" {
		err = multierr.Append(err, errors.New("backtest.output_dir 不能为空"))
	}
	if c.Backtest.AnnualizationFactor < 0 {
		err = multierr.Append(err, errors.New("backtest.annualization_factor 不能为负"))
	}
	if c.Strategy.FastPeriod <= 0 || c.Strategy.SlowPeriod <= 0 {
		err = multierr.Append(err, errors.New("strategy.fast_period 与 slow_period 必须大于0"))
	}
	if c.Strategy.FastPeriod >= c.Strategy.SlowPeriod {
		err = multierr.Append(err, errors.New("strategy.fast_period 必须小于 slow_period"))
	}
	if c.Exchange.Name == "" {
		err = multierr.Append(err, errors.New("exchange.name 不能为空"))
	}
	if c.Exchange.Retry.MaxAttempts <= 0 {
		err = multierr.Append(err, errors.New("exchange.retry.max_attempts 必须大于0"))
	}
	if c.Exchange.Retry.MinDelay <= 0 || c.Exchange.Retry.MaxDelay <= 0 {
		err = multierr.Append(err, errors.New("exchange.retry.delay 必须为正"))
	}
	if c.Exchange.Retry.MinDelay > c.Exchange.Retry.MaxDelay {
		err = multierr.Append(err, errors.New("exchange.retry.min_delay 不能大于 max_delay"))
	}
	if !c.Fetch.StartTime.IsZero() && !c.Fetch.EndTime.IsZero() && !c.Fetch.StartTime.Before(c.Fetch.EndTime) {
		err = multierr.Append(err, errors.New("fetch.start_time 必须早于 end_time"))
	}
	if c.Fetch.PageLimit <= 0 {
		err = multierr.Append(err, errors.New("fetch.page_limit 必须大于0"))
	}
	if c.OpenAI.APIKey != "" {
		if c.OpenAI.Model == "" {
			err = multierr.Append(err, errors.New("openai.model 不能为空"))
		}
		if c.OpenAI.Timeout <= 0 {
			err = multierr.Append(err, errors.New("openai.timeout 必须大于0"))
		}
	}
	if c.Database.Path == "" && !c.Database.InMemory {
		err = multierr.Append(err, errors.New("database.path 不能为空"))
	}
	if c.Database.MaxOpenConns <= 0 {
		err = multierr.Append(err, errors.New("database.max_open_conns 必须大于0"))
	}
	if c.Database.MaxIdleConns < 0 {
		err = multierr.Append(err, errors.New("database.max_idle_conns 不能为负"))
	}
	if c.Database.ConnMaxLifetime < 0 {
		err = multierr.Append(err, errors.New("database.conn_max_lifetime 不能为负"))
	}
	if c.Logging.Level == "" {
		err = multierr.Append(err, errors.New("logging.level 不能为空"))
	}
	if c.Logging.Encoding == "" {
		err = multierr.Append(err, errors.New("logging.encoding 不能为空"))
	}
	if len(c.Logging.OutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.output_paths 至少包含一个输出目标"))
	}
	if len(c.Logging.ErrorOutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.error_output_paths 至少包含一个输出目标"))
	}

	if err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	return nil
}
