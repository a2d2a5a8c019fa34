package scan

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/portprobe/pkg/probes"
	"github.com/projectdiscovery/portprobe/pkg/result"
)

const udpReadBufferSize = 4096

// UDPStrategy sends the catalog payload for the port and classifies the reply
type UDPStrategy struct {
	timeout time.Duration
	catalog *probes.Catalog
}

// NewUDPStrategy creates a udp strategy backed by the default catalog unless
// options carries one
func NewUDPStrategy(options *Options) *UDPStrategy {
	catalog := options.Catalog
	if catalog == nil {
		catalog = probes.Default()
	}
	return &UDPStrategy{timeout: options.timeout(), catalog: catalog}
}

// Probe writes a single datagram and waits for a single reply.
// ICMP port unreachable surfaces as ECONNREFUSED on a connected socket.
func (s *UDPStrategy) Probe(ctx context.Context, host string, port int) result.Outcome {
	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return result.Failed(host, port, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		return result.Failed(host, port, err)
	}

	if _, err := conn.Write(s.catalog.PayloadFor(port)); err != nil {
		return s.classifyError(host, port, err)
	}

	buf := make([]byte, udpReadBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		return s.classifyError(host, port, err)
	}

	valid, description := s.catalog.Validate(port, buf[:n])
	gologger.Debug().Msgf("UDP reply from %s:%d (%d bytes, valid=%v): %s\n", host, port, n, valid, description)
	if valid {
		return result.Outcome{Host: host, Port: port, Status: result.Open, Detail: description}
	}
	return result.Outcome{Host: host, Port: port, Status: result.OpenFiltered, Detail: description}
}

func (s *UDPStrategy) classifyError(host string, port int, err error) result.Outcome {
	switch {
	case isTimeout(err):
		return result.Outcome{Host: host, Port: port, Status: result.Filtered}
	case isConnRefused(err):
		return result.Outcome{Host: host, Port: port, Status: result.Closed}
	default:
		return result.Failed(host, port, err)
	}
}
