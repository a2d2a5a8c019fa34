package scan

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// TCPSequencer hands out initial sequence numbers for outgoing SYN segments
type TCPSequencer struct {
	sync.Mutex
	current uint32
}

// NewTCPSequencer starts from a random point of the sequence space
func NewTCPSequencer() *TCPSequencer {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &TCPSequencer{current: uint32(r.Int63n(math.MaxUint32))}
}

// Next returns the next sequence number, wrapping around at 2^32
func (t *TCPSequencer) Next() uint32 {
	t.Lock()
	defer t.Unlock()

	t.current++
	return t.current
}
