package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/auction-house/internal/model"
)

// ValidateBid checks a candidate amount against the item's state at
// the given time.  It returns nil when the bid is acceptable,
// ErrAuctionEnded when the item's window has closed, and ErrBidTooLow
// when the amount does not strictly exceed the current price.  The
// comparison is strict: matching the current price is not enough.
func ValidateBid(item *model.Item, amount decimal.Decimal, now time.Time) error {
	if StatusOf(item.EndTime, now) == StatusEnded {
		return ErrAuctionEnded
	}
	if amount.Cmp(item.CurrentPrice) <= 0 {
		return ErrBidTooLow
	}
	return nil
}
