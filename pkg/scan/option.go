package scan

import (
	"time"

	"github.com/projectdiscovery/portprobe/pkg/probes"
)

// DefaultTimeout bounds a single probe
const DefaultTimeout = time.Second

// Options of the probe strategies
type Options struct {
	// Timeout per probe, DefaultTimeout when zero
	Timeout time.Duration
	// Proxy is a socks5 proxy address used by connect probes
	Proxy     string
	ProxyAuth string
	// Catalog overrides the built-in udp payload catalog
	Catalog *probes.Catalog
	// Transport overrides the raw socket transport of syn probes
	Transport RawTransport
	// Resolver overrides host resolution of syn probes and of connect probes
	// sent without a proxy
	Resolver IPResolver
}

func (o *Options) timeout() time.Duration {
	if o == nil || o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
