// Package auction implements the bid-placement and lifecycle rules of
// the auction house.  It is deliberately free of HTTP and SQL concerns:
// persistence is reached through the Store interface and time through
// the Clock interface, so every rule in this package is testable
// without a database.
package auction

import "errors"

// ErrItemNotFound is returned when a bid references an item id that
// does not resolve to a listing. Handlers should translate this into
// an HTTP 404 response.
var ErrItemNotFound = errors.New("item not found")

// ErrAuctionEnded is returned when a bid arrives after the item's end
// time has passed. The check is made against the clock at validation
// time, never against a stored flag. Handlers should translate this
// into an HTTP 409 response.
var ErrAuctionEnded = errors.New("auction has ended")

// ErrBidTooLow is returned when the offered amount does not strictly
// exceed the item's current price. A bid equal to the current price is
// rejected. Handlers should translate this into an HTTP 400 response.
var ErrBidTooLow = errors.New("bid must be higher than current price")

// ErrInvalidAmount is returned when the offered amount is not a
// positive decimal. Handlers should translate this into an HTTP 422
// response.
var ErrInvalidAmount = errors.New("invalid bid amount")

// ErrConflict is returned when the commit lost the race against
// concurrent bids on the same item more times than the retry budget
// allows. The caller may retry the whole operation. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("concurrent bid conflict")
