package auction

import "time"

// Status classifies an auction item as accepting bids or closed.
type Status string

const (
	// StatusActive means the current time is before the item's end time.
	StatusActive Status = "active"
	// StatusEnded means the item's end time has passed.
	StatusEnded Status = "ended"
)

// StatusOf derives the lifecycle status of an item from its end time
// and the current time.  The status is never stored: recomputing it on
// every read and write path means it cannot drift from the clock, and
// no background sweep is needed to flip expired items.  An item is
// active strictly while now < endTime; at the boundary it is ended.
func StatusOf(endTime, now time.Time) Status {
	if now.Before(endTime) {
		return StatusActive
	}
	return StatusEnded
}
