package series

import (
	"testing"
	"time"

	"signal-metrics/internal/exchange"
)

func hourlyCandles(start time.Time, closes ...float64) []exchange.Candle {
	candles := make([]exchange.Candle, len(closes))
	for i, c := range closes {
		candles[i] = exchange.Candle{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      c - 1,
			High:      c + 2,
			Low:       c - 3,
			Close:     c,
			Volume:    10,
		}
	}
	return candles
}

func TestResample_Aggregation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(hourlyCandles(start, 100, 104, 98, 102, 110, 111))

	out, err := Resample(s, "4h")
	if err != nil {
		t.Fatalf("Resample returned error: %v", err)
	}

	if out.Len() != 2 {
		t.Fatalf("expected 2 buckets, got %d", out.Len())
	}

	if !out.Timestamps[0].Equal(start) {
		t.Errorf("bucket 0 timestamp = %v, want %v", out.Timestamps[0], start)
	}
	if out.Open[0] != 99 {
		t.Errorf("bucket 0 open = %v, want first open 99", out.Open[0])
	}
	if out.High[0] != 106 {
		t.Errorf("bucket 0 high = %v, want max 106", out.High[0])
	}
	if out.Low[0] != 95 {
		t.Errorf("bucket 0 low = %v, want min 95", out.Low[0])
	}
	if out.Close[0] != 102 {
		t.Errorf("bucket 0 close = %v, want last 102", out.Close[0])
	}
	if out.Volume[0] != 40 {
		t.Errorf("bucket 0 volume = %v, want sum 40", out.Volume[0])
	}

	if !out.Timestamps[1].Equal(start.Add(4 * time.Hour)) {
		t.Errorf("bucket 1 timestamp = %v", out.Timestamps[1])
	}
	if out.Close[1] != 111 || out.Volume[1] != 20 {
		t.Errorf("bucket 1 close/volume = %v/%v, want 111/20", out.Close[1], out.Volume[1])
	}
}

func TestResample_DropsEmptyBuckets(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := append(
		hourlyCandles(start, 100, 101),
		hourlyCandles(start.Add(8*time.Hour), 105, 106)...,
	)

	out, err := Resample(New(candles), "4h")
	if err != nil {
		t.Fatalf("Resample returned error: %v", err)
	}

	if out.Len() != 2 {
		t.Fatalf("expected 2 buckets without empty gap buckets, got %d", out.Len())
	}
	if !out.Timestamps[1].Equal(start.Add(8 * time.Hour)) {
		t.Errorf("gap bucket must be skipped, second bucket at %v", out.Timestamps[1])
	}
}

func TestResample_Daily(t *testing.T) {
	start := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	out, err := Resample(New(hourlyCandles(start, 100, 101, 102, 103)), "1d")
	if err != nil {
		t.Fatalf("Resample returned error: %v", err)
	}

	// 22点与23点属于1月1日, 0点与1点属于1月2日。
	if out.Len() != 2 {
		t.Fatalf("expected 2 daily buckets, got %d", out.Len())
	}
	if out.Close[0] != 101 || out.Close[1] != 103 {
		t.Errorf("daily closes = %v/%v, want 101/103", out.Close[0], out.Close[1])
	}
}

func TestResample_InvalidInterval(t *testing.T) {
	if _, err := Resample(Series{}, "3h"); err == nil {
		t.Fatalf("expected error for unsupported interval")
	}
	if _, err := Resample(Series{}, "15m"); err == nil {
		t.Fatalf("expected error for unsupported interval")
	}
}

func TestResample_Empty(t *testing.T) {
	out, err := Resample(Series{}, "1h")
	if err != nil {
		t.Fatalf("Resample returned error: %v", err)
	}
	if !out.Empty() {
		t.Errorf("expected empty result, got %d rows", out.Len())
	}
}
