package scan

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/portprobe/pkg/privileges"
	"github.com/projectdiscovery/portprobe/pkg/result"
)

// SynStrategy sends a single SYN and never completes the handshake
type SynStrategy struct {
	timeout   time.Duration
	transport RawTransport
	resolver  IPResolver
}

// NewSynStrategy opens the raw transport, unless options carries one.
// Missing privileges are reported as ErrNeedPrivileges.
func NewSynStrategy(options *Options) (*SynStrategy, error) {
	s := &SynStrategy{
		timeout:   options.timeout(),
		transport: options.Transport,
		resolver:  options.Resolver,
	}
	if s.transport == nil {
		if err := privileges.Check(); err != nil {
			return nil, errors.Wrap(ErrNeedPrivileges, err.Error())
		}
		transport, err := NewRawSocketTransport()
		if err != nil {
			if isPermission(err) {
				return nil, errors.Wrap(ErrNeedPrivileges, err.Error())
			}
			return nil, errors.Wrap(err, "could not open raw socket")
		}
		s.transport = transport
	}
	if s.resolver == nil {
		s.resolver = NewHostResolver()
	}
	return s, nil
}

// Probe classifies host:port from the first answer to a SYN
func (s *SynStrategy) Probe(ctx context.Context, host string, port int) result.Outcome {
	ip, err := s.resolver.ResolveIP(ctx, host)
	if err != nil {
		return result.Failed(host, port, err)
	}

	if err := s.transport.SendSyn(ip, port); err != nil {
		return result.Failed(host, port, errors.Wrap(err, "could not send syn"))
	}

	reply, err := s.transport.ReceiveWithTimeout(ip, port, s.timeout)
	switch {
	case errors.Is(err, ErrNoReply):
		return result.Outcome{Host: host, Port: port, Status: result.Filtered}
	case err != nil:
		return result.Failed(host, port, err)
	}

	switch {
	case reply.IsSynAck():
		// tear the half open connection down, the rst seq is the peer's ack
		if err := s.transport.SendRst(ip, port, reply.Ack); err != nil {
			gologger.Debug().Msgf("Could not send RST to %s:%d: %s\n", ip, port, err)
		}
		return result.Outcome{Host: host, Port: port, Status: result.Open}
	case reply.RST:
		return result.Outcome{Host: host, Port: port, Status: result.Closed}
	default:
		return result.Outcome{Host: host, Port: port, Status: result.Filtered}
	}
}

// Close releases the raw transport
func (s *SynStrategy) Close() error {
	return s.transport.Close()
}
