package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories lists the closed set of item categories accepted at
// creation time.  The values are display strings and are stored
// verbatim in the items.category column.
var Categories = []string{"Electronics", "Watches", "Jewelry", "Antiques", "Art", "Other"}

// Conditions lists the closed set of item conditions.  When no
// condition is supplied at creation, "New" is assumed.
var Conditions = []string{"New", "Used", "Refurbished", "Antique"}

// ValidCategory reports whether s is one of the known categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// ValidCondition reports whether s is one of the known conditions.
func ValidCondition(s string) bool {
	for _, c := range Conditions {
		if c == s {
			return true
		}
	}
	return false
}

// Item represents an auction listing as stored in the `items`
// table.  Pricing uses DECIMAL(12,2) columns scanned into
// decimal.Decimal so that amounts are exact.  There is no stored
// status column: whether an auction is active or ended is always
// derived from EndTime and the current clock.
//
// Fields:
//  ID            – primary key identifier.
//  Title         – short listing title.
//  Description   – free-form listing description.
//  StartingPrice – price the auction opened at; immutable.
//  CurrentPrice  – highest accepted bid so far, never below StartingPrice.
//  SellerID      – user who listed the item; immutable.
//  Category      – one of Categories.
//  Condition     – one of Conditions.
//  DurationHours – auction length in hours (1..168) when supplied at creation.
//  StartTime     – when the auction window opened.
//  EndTime       – when the auction window closes; StartTime + DurationHours.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type Item struct {
	ID            uint64          // items.id
	Title         string          // items.title
	Description   string          // items.description
	StartingPrice decimal.Decimal // items.starting_price
	CurrentPrice  decimal.Decimal // items.current_price
	SellerID      uint64          // items.seller_id
	Category      string          // items.category
	Condition     string          // items.item_condition (condition is a reserved-ish word in some tools)
	DurationHours uint32          // items.duration_hours
	StartTime     time.Time       // items.start_time
	EndTime       time.Time       // items.end_time
	CreatedAt     time.Time       // items.created_at
	UpdatedAt     time.Time       // items.updated_at
}
