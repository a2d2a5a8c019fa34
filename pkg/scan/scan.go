package scan

import (
	"context"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/portprobe/pkg/protocol"
	"github.com/projectdiscovery/portprobe/pkg/result"
)

// Strategy probes a single (host, port) pair. Implementations must be safe
// for concurrent use and must always return within their timeout.
type Strategy interface {
	Probe(ctx context.Context, host string, port int) result.Outcome
}

// NewStrategy builds the strategy for p. Strategies holding resources
// implement io.Closer and must be closed once the scan is over.
func NewStrategy(p protocol.Protocol, options *Options) (Strategy, error) {
	if options == nil {
		options = &Options{}
	}
	switch p {
	case protocol.TCPConnect:
		return NewConnectStrategy(options)
	case protocol.TCPSyn:
		return NewSynStrategy(options)
	case protocol.UDP:
		return NewUDPStrategy(options), nil
	default:
		return nil, errors.Wrapf(ErrUnknownProtocol, "%s", p)
	}
}
