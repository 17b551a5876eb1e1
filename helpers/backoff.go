package helpers

import "time"

// Limited exponential backoff for retry delays.
// Failure() returns Min first, then each next delay is K times longer, up to Max.
// Not safe for concurrent use.
type Backoff struct {
	Min time.Duration
	Max time.Duration
	K   float32

	next time.Duration
}

// Use scenario:
// for {
//   if op() { backoff.Reset(); continue }
//   time.Sleep(backoff.Failure())
// }
func (b *Backoff) Failure() time.Duration {
	d := b.limit(b.next)
	b.next = b.limit(time.Duration(float32(d) * b.K))
	return d
}

func (b *Backoff) Reset() { b.next = b.Min }

func (b *Backoff) limit(d time.Duration) time.Duration {
	if d < b.Min {
		d = b.Min
	}
	if b.Max != 0 && d > b.Max {
		d = b.Max
	}
	return d
}
