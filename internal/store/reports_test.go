package store

import (
	"context"
	"testing"

	"signal-metrics/internal/config"
	"signal-metrics/internal/metrics"
)

func newTestStore(t *testing.T) *ReportStore {
	t.Helper()

	sqlite, err := NewSQLite(config.DatabaseConfig{
		InMemory:     true,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlite.Close()
	})

	reports, err := NewReportStore(sqlite.DB(), nil)
	if err != nil {
		t.Fatalf("NewReportStore failed: %v", err)
	}
	return reports
}

func TestReportStore_SaveAndLatest(t *testing.T) {
	reports := newTestStore(t)
	ctx := context.Background()

	first := metrics.Report{
		Sharpe:      1.2345,
		MaxDrawdown: -0.25,
		NumTrades:   10,
		WinRate:     60,
		StartDate:   "2022-01-01T00:00:00Z",
		EndDate:     "2022-06-01T00:00:00Z",
	}
	second := first
	second.Sharpe = 2.5

	if err := reports.Save(ctx, "BTCUSDT", "4h", "binance", first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := reports.Save(ctx, "BTCUSDT", "4h", "binance", second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := reports.Latest(ctx, "BTCUSDT", "4h")
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if got != second {
		t.Errorf("Latest = %+v, want most recent record %+v", got, second)
	}
}

func TestReportStore_LatestMissing(t *testing.T) {
	reports := newTestStore(t)

	if _, err := reports.Latest(context.Background(), "ETHUSDT", "1h"); err == nil {
		t.Fatalf("expected error for missing record")
	}
}

func TestReportStore_EmptySymbol(t *testing.T) {
	reports := newTestStore(t)

	if err := reports.Save(context.Background(), "", "1h", "binance", metrics.Report{}); err == nil {
		t.Fatalf("expected error for empty symbol")
	}
}
