package auction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/auction-house/internal/model"
)

// fakeClock pins time for deterministic lifecycle checks.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// memStore is an in-memory Store whose AppendBid performs the same
// compare-and-set the SQL store does, guarded by a mutex so concurrent
// PlaceBid calls exercise the retry path.
type memStore struct {
	mu     sync.Mutex
	items  map[uint64]*model.Item
	bids   map[uint64][]model.Bid
	nextID uint64

	// forcedMisses makes the next n AppendBid calls report a lost race
	// without touching state.
	forcedMisses int
}

func newMemStore(items ...*model.Item) *memStore {
	s := &memStore{
		items: make(map[uint64]*model.Item),
		bids:  make(map[uint64][]model.Bid),
	}
	for _, it := range items {
		cp := *it
		s.items[it.ID] = &cp
	}
	return s
}

func (s *memStore) GetItem(_ context.Context, id uint64) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *memStore) AppendBid(_ context.Context, bid *model.Bid, expectedPrice decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forcedMisses > 0 {
		s.forcedMisses--
		return false, nil
	}
	it, ok := s.items[bid.ItemID]
	if !ok {
		return false, ErrItemNotFound
	}
	if !it.CurrentPrice.Equal(expectedPrice) {
		return false, nil
	}
	it.CurrentPrice = bid.Amount
	s.nextID++
	bid.ID = s.nextID
	s.bids[bid.ItemID] = append(s.bids[bid.ItemID], *bid)
	return true, nil
}

func (s *memStore) ListBids(_ context.Context, itemID uint64) ([]model.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Bid, len(s.bids[itemID]))
	copy(out, s.bids[itemID])
	return out, nil
}

func (s *memStore) price(id uint64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].CurrentPrice
}

func testItem() *model.Item {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &model.Item{
		ID:            1,
		Title:         "Vintage pocket watch",
		StartingPrice: decimal.NewFromInt(100),
		CurrentPrice:  decimal.NewFromInt(100),
		SellerID:      7,
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
	}
}

func newTestService(items ...*model.Item) (*Service, *memStore, *fakeClock) {
	store := newMemStore(items...)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 5, 0, 0, time.UTC)}
	return NewServiceWithClock(store, clock), store, clock
}

func TestPlaceBidSuccess(t *testing.T) {
	svc, store, clock := newTestService(testItem())

	bid, err := svc.PlaceBid(context.Background(), 1, 42, decimal.NewFromInt(150))
	if err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	if bid.ID == 0 {
		t.Error("committed bid has no id")
	}
	if bid.BidderID != 42 || bid.ItemID != 1 {
		t.Errorf("bid attribution wrong: %+v", bid)
	}
	if !bid.PlacedAt.Equal(clock.Now()) {
		t.Errorf("PlacedAt = %v, want clock time %v", bid.PlacedAt, clock.Now())
	}
	if got := store.price(1); !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("current price = %s, want 150", got)
	}
}

func TestPlaceBidRejections(t *testing.T) {
	tests := []struct {
		name    string
		itemID  uint64
		amount  decimal.Decimal
		advance time.Duration
		wantErr error
	}{
		{"unknown item", 99, decimal.NewFromInt(150), 0, ErrItemNotFound},
		{"zero amount", 1, decimal.Zero, 0, ErrInvalidAmount},
		{"negative amount", 1, decimal.NewFromInt(-5), 0, ErrInvalidAmount},
		{"equal to current price", 1, decimal.NewFromInt(100), 0, ErrBidTooLow},
		{"below current price", 1, decimal.NewFromInt(90), 0, ErrBidTooLow},
		{"after the window closed", 1, decimal.NewFromInt(150), 2 * time.Hour, ErrAuctionEnded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, clock := newTestService(testItem())
			clock.Advance(tt.advance)

			_, err := svc.PlaceBid(context.Background(), tt.itemID, 42, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PlaceBid = %v, want %v", err, tt.wantErr)
			}
			// A rejection must leave the item and its history untouched.
			if got := store.price(1); !got.Equal(decimal.NewFromInt(100)) {
				t.Errorf("price changed on rejection: %s", got)
			}
			if hist, _ := store.ListBids(context.Background(), 1); len(hist) != 0 {
				t.Errorf("rejection recorded a bid: %d rows", len(hist))
			}
		})
	}
}

func TestPlaceBidRetriesAfterLostRace(t *testing.T) {
	svc, store, _ := newTestService(testItem())
	store.forcedMisses = 2 // lose twice, succeed on the third attempt

	bid, err := svc.PlaceBid(context.Background(), 1, 42, decimal.NewFromInt(150))
	if err != nil {
		t.Fatalf("PlaceBid after lost races: %v", err)
	}
	if !bid.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("amount = %s, want 150", bid.Amount)
	}
}

func TestPlaceBidConflictWhenRetriesExhausted(t *testing.T) {
	svc, store, _ := newTestService(testItem())
	store.forcedMisses = maxCommitAttempts

	_, err := svc.PlaceBid(context.Background(), 1, 42, decimal.NewFromInt(150))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("PlaceBid = %v, want ErrConflict", err)
	}
}

func TestPlaceBidConcurrent(t *testing.T) {
	// Two bidders race from a price of 50.  Whatever the interleaving,
	// the higher bid must end up as the current price and the history
	// must be strictly increasing.  The lower bidder either committed
	// first or was told the price had moved past them.
	item := testItem()
	item.StartingPrice = decimal.NewFromInt(50)
	item.CurrentPrice = decimal.NewFromInt(50)
	svc, store, _ := newTestService(item)

	amounts := []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(101)}
	errs := make([]error, len(amounts))
	var wg sync.WaitGroup
	for i, amt := range amounts {
		wg.Add(1)
		go func(i int, amt decimal.Decimal) {
			defer wg.Done()
			_, errs[i] = svc.PlaceBid(context.Background(), 1, uint64(100+i), amt)
		}(i, amt)
	}
	wg.Wait()

	if errs[1] != nil {
		t.Fatalf("highest bid failed: %v", errs[1])
	}
	if errs[0] != nil && !errors.Is(errs[0], ErrBidTooLow) {
		t.Fatalf("lower bid error = %v, want nil or ErrBidTooLow", errs[0])
	}
	if got := store.price(1); !got.Equal(decimal.NewFromInt(101)) {
		t.Errorf("final price = %s, want 101", got)
	}

	hist, err := svc.History(context.Background(), 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	for i := 1; i < len(hist); i++ {
		if hist[i].Amount.Cmp(hist[i-1].Amount) <= 0 {
			t.Errorf("history not strictly increasing at %d: %s then %s", i, hist[i-1].Amount, hist[i].Amount)
		}
	}
}

func TestEvaluateStatus(t *testing.T) {
	item := testItem()
	svc, _, clock := newTestService(item)

	if got := svc.EvaluateStatus(item); got != StatusActive {
		t.Errorf("status while open = %q, want %q", got, StatusActive)
	}
	clock.Advance(2 * time.Hour)
	if got := svc.EvaluateStatus(item); got != StatusEnded {
		t.Errorf("status after end = %q, want %q", got, StatusEnded)
	}
	// Evaluating again gives the same answer.
	if got := svc.EvaluateStatus(item); got != StatusEnded {
		t.Errorf("status not stable: %q", got)
	}
}

func TestAuctionScenario(t *testing.T) {
	// Full pass over one listing: open at 100 for an hour, one winning
	// bid, one too-low bid, then the window closes and late money is
	// turned away.
	svc, store, clock := newTestService(testItem())
	ctx := context.Background()

	if _, err := svc.PlaceBid(ctx, 1, 42, decimal.NewFromInt(150)); err != nil {
		t.Fatalf("first bid: %v", err)
	}
	if _, err := svc.PlaceBid(ctx, 1, 43, decimal.NewFromInt(120)); !errors.Is(err, ErrBidTooLow) {
		t.Fatalf("low bid = %v, want ErrBidTooLow", err)
	}

	clock.Advance(2 * time.Hour)
	if _, err := svc.PlaceBid(ctx, 1, 44, decimal.NewFromInt(200)); !errors.Is(err, ErrAuctionEnded) {
		t.Fatalf("late bid = %v, want ErrAuctionEnded", err)
	}

	hist, err := svc.History(ctx, 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 1 || !hist[0].Amount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("history = %+v, want the single 150 bid", hist)
	}
	if got := store.price(1); !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("final price = %s, want 150", got)
	}
}
