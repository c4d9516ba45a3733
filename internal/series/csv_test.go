package series

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"signal-metrics/internal/exchange"
)

func TestFileName(t *testing.T) {
	got := FileName("BTCUSDT", "1h", "binance")
	if got != "BTCUSDT_1h_binance.csv" {
		t.Errorf("FileName = %q", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	original := New([]exchange.Candle{
		{Timestamp: start, Open: 100, High: 105, Low: 99.5, Close: 104, Volume: 12.25},
		{Timestamp: start.Add(time.Hour), Open: 104, High: 110, Low: 103, Close: 108, Volume: 8},
	})

	path := filepath.Join(t.TempDir(), FileName("BTCUSDT", "1h", "binance"))
	if err := Save(path, original); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if loaded.Len() != original.Len() {
		t.Fatalf("loaded %d rows, want %d", loaded.Len(), original.Len())
	}
	for i := 0; i < original.Len(); i++ {
		if !loaded.Timestamps[i].Equal(original.Timestamps[i]) {
			t.Errorf("row %d timestamp = %v, want %v", i, loaded.Timestamps[i], original.Timestamps[i])
		}
		if loaded.Open[i] != original.Open[i] ||
			loaded.High[i] != original.High[i] ||
			loaded.Low[i] != original.Low[i] ||
			loaded.Close[i] != original.Close[i] ||
			loaded.Volume[i] != original.Volume[i] {
			t.Errorf("row %d mismatch", i)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_BadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "time,open,high,low,close,volume\n2022-01-01 00:00:00,1,1,1,1,1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unexpected header")
	}
}

func TestLoad_RejectsOutOfOrderRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unordered.csv")
	content := "datetime,open,high,low,close,volume\n" +
		"2022-01-01 01:00:00,1,1,1,1,1\n" +
		"2022-01-01 00:00:00,1,1,1,1,1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for out-of-order rows")
	}
}

func TestLoad_AcceptsOffsetTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offset.csv")
	content := "datetime,open,high,low,close,volume\n" +
		"2022-01-01 00:00:00+00:00,1,2,0.5,1.5,3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Len() != 1 || s.Close[0] != 1.5 {
		t.Errorf("unexpected series: %+v", s)
	}
}
