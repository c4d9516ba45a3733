package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"signal-metrics/internal/metrics"
)

// ReportStore 持久化回测绩效记录。
type ReportStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReportStore 创建报告存储并初始化表结构。
func NewReportStore(db *sql.DB, logger *zap.Logger) (*ReportStore, error) {
	if db == nil {
		return nil, errors.New("store: 数据库实例不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &ReportStore{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *ReportStore) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS backtest_reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL,
			interval TEXT NOT NULL,
			source TEXT NOT NULL,
			sharpe REAL NOT NULL,
			calmar REAL NOT NULL,
			sortino REAL NOT NULL,
			max_drawdown REAL NOT NULL,
			annual_return REAL NOT NULL,
			total_return REAL NOT NULL,
			num_trades INTEGER NOT NULL,
			win_rate REAL NOT NULL,
			payload TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_reports_symbol ON backtest_reports(symbol, interval);`,
	}

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("store: 初始化表结构失败: %w", err)
		}
	}

	return nil
}

// Save 写入一条绩效记录，payload 保存完整的JSON文档。
func (s *ReportStore) Save(ctx context.Context, symbol, interval, source string, report metrics.Report) error {
	if symbol == "" {
		return errors.New("store: symbol 不能为空")
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("store: 序列化绩效记录失败: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO backtest_reports
			(symbol, interval, source, sharpe, calmar, sortino, max_drawdown,
			 annual_return, total_return, num_trades, win_rate, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		symbol, interval, source,
		report.Sharpe, report.Calmar, report.Sortino, report.MaxDrawdown,
		report.AnnualReturn, report.TotalReturn, int(report.NumTrades), report.WinRate,
		string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: 写入绩效记录失败: %w", err)
	}

	return nil
}

// Latest 返回指定交易对与周期最近一次的绩效记录。
func (s *ReportStore) Latest(ctx context.Context, symbol, interval string) (metrics.Report, error) {
	var payload string

	row := s.db.QueryRowContext(ctx,
		`SELECT payload FROM backtest_reports
		 WHERE symbol = ? AND interval = ?
		 ORDER BY id DESC LIMIT 1`,
		symbol, interval,
	)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return metrics.Report{}, fmt.Errorf("store: 未找到 %s/%s 的绩效记录: %w", symbol, interval, err)
		}
		return metrics.Report{}, fmt.Errorf("store: 查询绩效记录失败: %w", err)
	}

	var report metrics.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return metrics.Report{}, fmt.Errorf("store: 反序列化绩效记录失败: %w", err)
	}

	return report, nil
}
