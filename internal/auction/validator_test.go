package auction

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/auction-house/internal/model"
)

func TestValidateBid(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	item := &model.Item{
		ID:           1,
		CurrentPrice: decimal.NewFromInt(100),
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
	}

	tests := []struct {
		name    string
		amount  decimal.Decimal
		now     time.Time
		wantErr error
	}{
		{"higher bid while open", decimal.NewFromInt(150), start.Add(10 * time.Minute), nil},
		{"one cent above current", decimal.RequireFromString("100.01"), start.Add(10 * time.Minute), nil},
		{"equal to current price", decimal.NewFromInt(100), start.Add(10 * time.Minute), ErrBidTooLow},
		{"below current price", decimal.NewFromInt(99), start.Add(10 * time.Minute), ErrBidTooLow},
		{"after end time", decimal.NewFromInt(200), start.Add(2 * time.Hour), ErrAuctionEnded},
		{"exactly at end time", decimal.NewFromInt(200), start.Add(time.Hour), ErrAuctionEnded},
		// The window check comes first: a low bid on an ended auction
		// reports the ended auction, not the low amount.
		{"low bid after end", decimal.NewFromInt(1), start.Add(2 * time.Hour), ErrAuctionEnded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBid(item, tt.amount, tt.now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBid(%s at %v) = %v, want %v", tt.amount, tt.now, err, tt.wantErr)
			}
		})
	}
}
