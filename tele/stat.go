package tele

import (
	"sync"
)

// Low priority telemetry buffer. Can be updated at any time.
// Sent together with more important data or on Command_REPORT.
type Stat struct { //nolint:maligned
	sync.Mutex
	Telemetry_Stat
}

// Internal for tele package. Caller must hold self.Mutex.
func (self *Stat) Locked_Reset() {
	self.Telemetry_Stat.Reset()
	self.CoinRejected = make(map[uint32]uint32, 4)
}

// Internal for tele package. Caller must hold self.Mutex.
func (self *Stat) Locked_Copy() *Telemetry_Stat {
	c := &Telemetry_Stat{CoinRejected: make(map[uint32]uint32, len(self.CoinRejected))}
	for k, v := range self.CoinRejected {
		c.CoinRejected[k] = v
	}
	return c
}
