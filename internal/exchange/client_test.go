package exchange

import (
	"context"
	"testing"
	"time"
)

func TestFetchCandlesRange_ValidatesRequest(t *testing.T) {
	c := &Client{}
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := c.FetchCandlesRange(ctx, RangeRequest{
		Start: start, End: start.Add(time.Hour), PageLimit: 100,
	}); err == nil {
		t.Errorf("expected error for missing timeframe")
	}

	if _, err := c.FetchCandlesRange(ctx, RangeRequest{
		Timeframe: "1h", Start: start, End: start.Add(time.Hour),
	}); err == nil {
		t.Errorf("expected error for non-positive page limit")
	}

	if _, err := c.FetchCandlesRange(ctx, RangeRequest{
		Timeframe: "1h", Start: start, End: start, PageLimit: 100,
	}); err == nil {
		t.Errorf("expected error for empty window")
	}
}
