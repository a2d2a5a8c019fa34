// Package probes holds the UDP payload catalog used by the udp strategy.
//
// UDP gives no handshake, so an open service only answers when it receives
// a request it understands. Each catalog entry pairs a protocol specific
// request with a validator that decides whether the reply actually came from
// that protocol. Ports without an entry are probed with an empty datagram and
// any reply counts as valid.
package probes

import "sync"

// ValidateFunc checks a reply and returns a short description of what was seen
type ValidateFunc func(response []byte) (bool, string)

// Probe represents a UDP service probe
type Probe struct {
	Name     string       // Service label
	Payload  []byte       // Raw bytes sent in a single datagram
	Validate ValidateFunc // nil means any non-empty reply is valid
}

// Catalog holds probes indexed by port
type Catalog struct {
	mu         sync.RWMutex
	portProbes map[int]*Probe
}

// NewCatalog creates a new empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		portProbes: make(map[int]*Probe),
	}
}

// Add registers probe for the given ports, replacing any previous entry
func (c *Catalog) Add(probe *Probe, ports ...int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, port := range ports {
		c.portProbes[port] = probe
	}
}

// Get returns the probe for port or nil
func (c *Catalog) Get(port int) *Probe {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.portProbes[port]
}

// PayloadFor returns the datagram to send to port. Unknown ports get an empty payload.
func (c *Catalog) PayloadFor(port int) []byte {
	probe := c.Get(port)
	if probe == nil {
		return []byte{}
	}
	return probe.Payload
}

// Name returns the service label for port, empty if unknown
func (c *Catalog) Name(port int) string {
	if probe := c.Get(port); probe != nil {
		return probe.Name
	}
	return ""
}

// Validate decides whether response is a genuine reply from the service on port
func (c *Catalog) Validate(port int, response []byte) (bool, string) {
	probe := c.Get(port)
	if probe == nil || probe.Validate == nil {
		return anyResponse(response)
	}
	return probe.Validate(response)
}

// Len returns the number of ports with an entry
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.portProbes)
}

// Clone returns an independent copy of the catalog
func (c *Catalog) Clone() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()

	clone := NewCatalog()
	for port, probe := range c.portProbes {
		clone.portProbes[port] = probe
	}
	return clone
}

func anyResponse(response []byte) (bool, string) {
	if len(response) == 0 {
		return false, "empty response"
	}
	return true, "Unknown service response"
}
