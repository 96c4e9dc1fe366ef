package auction

import "time"

// Clock supplies the current time to lifecycle evaluation and bid
// timestamps.  Injecting it keeps the rules deterministic under test.
type Clock interface {
	Now() time.Time
}

// UTCClock is the production clock; it reads the system time in UTC.
type UTCClock struct{}

// Now returns the current system time in UTC.
func (UTCClock) Now() time.Time { return time.Now().UTC() }
