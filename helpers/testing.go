package helpers

import (
	"math/rand"
	"time"
)

// RandUnix is independent random source for tests running in parallel.
func RandUnix() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
