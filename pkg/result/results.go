package result

import (
	"strconv"
	"sync"

	"github.com/projectdiscovery/portprobe/pkg/protocol"
)

// PortRecord is the reported state of a single port
type PortRecord struct {
	Status  string `json:"status" yaml:"status"`
	Service string `json:"service,omitempty" yaml:"service,omitempty"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// ScanResult maps host -> port -> record. Every scanned host has a key.
type ScanResult map[string]map[string]PortRecord

// ServiceResolver looks up the service name of a port for a transport
type ServiceResolver interface {
	Resolve(port int, transport string) (string, bool)
}

// Aggregator folds probe outcomes into a ScanResult applying the protocol policy
type Aggregator struct {
	sync.RWMutex
	protocol protocol.Protocol
	services ServiceResolver
	ipPorts  map[string]map[string]PortRecord
	seen     int
}

// NewAggregator creates an aggregator with an empty port map for every host.
// services may be nil, in which case no service names are attached.
func NewAggregator(p protocol.Protocol, services ServiceResolver, hosts ...string) *Aggregator {
	ipPorts := make(map[string]map[string]PortRecord, len(hosts))
	for _, host := range hosts {
		ipPorts[host] = make(map[string]PortRecord)
	}
	return &Aggregator{protocol: p, services: services, ipPorts: ipPorts}
}

// Add folds a single outcome. It returns false when the outcome was suppressed.
func (a *Aggregator) Add(o Outcome) bool {
	a.Lock()
	defer a.Unlock()

	a.seen++

	if _, ok := a.ipPorts[o.Host]; !ok {
		a.ipPorts[o.Host] = make(map[string]PortRecord)
	}

	if !Keep(a.protocol, o.Status) {
		return false
	}

	record := PortRecord{Status: o.Status.String()}
	switch o.Status {
	case Error:
		record.Detail = o.Detail
	default:
		if a.services != nil && WantsService(a.protocol, o.Status) {
			if name, ok := a.services.Resolve(o.Port, a.protocol.Transport()); ok {
				record.Service = name
			}
		}
	}

	a.ipPorts[o.Host][strconv.Itoa(o.Port)] = record
	return true
}

// Seen returns the number of outcomes folded so far, suppressed ones included
func (a *Aggregator) Seen() int {
	a.RLock()
	defer a.RUnlock()

	return a.seen
}

// Result returns a copy of the aggregated state that later Adds won't touch
func (a *Aggregator) Result() ScanResult {
	a.RLock()
	defer a.RUnlock()

	out := make(ScanResult, len(a.ipPorts))
	for host, ports := range a.ipPorts {
		cp := make(map[string]PortRecord, len(ports))
		for p, record := range ports {
			cp[p] = record
		}
		out[host] = cp
	}
	return out
}

// Len returns the number of hosts in the result
func (r ScanResult) Len() int {
	return len(r)
}

// PortCount returns the number of reported ports for host
func (r ScanResult) PortCount(host string) int {
	return len(r[host])
}
