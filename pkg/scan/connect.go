package scan

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/portprobe/pkg/result"
	iputil "github.com/projectdiscovery/utils/ip"
	"golang.org/x/net/proxy"
)

// ConnectStrategy completes a full tcp handshake
type ConnectStrategy struct {
	timeout  time.Duration
	dialer   proxy.ContextDialer
	resolver IPResolver
}

// NewConnectStrategy creates a connect strategy, dialing through a socks5
// proxy when one is configured
func NewConnectStrategy(options *Options) (*ConnectStrategy, error) {
	timeout := options.timeout()
	s := &ConnectStrategy{
		timeout: timeout,
		dialer:  &net.Dialer{Timeout: timeout},
	}
	if options.Proxy == "" {
		s.resolver = options.Resolver
		if s.resolver == nil {
			s.resolver = NewHostResolver()
		}
		return s, nil
	}

	var auth *proxy.Auth
	if options.ProxyAuth != "" && strings.Contains(options.ProxyAuth, ":") {
		credentials := strings.SplitN(options.ProxyAuth, ":", 2)
		auth = &proxy.Auth{User: credentials[0], Password: credentials[1]}
	}
	proxyDialer, err := proxy.SOCKS5("tcp", options.Proxy, auth, &net.Dialer{Timeout: timeout})
	if err != nil {
		return nil, errors.Wrap(err, "could not create proxy dialer")
	}
	contextDialer, ok := proxyDialer.(proxy.ContextDialer)
	if !ok {
		return nil, errors.New("invalid proxy dialer")
	}
	s.dialer = contextDialer
	return s, nil
}

// Probe dials host:port and closes the connection right away. Names are
// resolved before the dial timeout starts, a failed lookup is an error.
// Through a proxy the name is left to the proxy.
func (s *ConnectStrategy) Probe(ctx context.Context, host string, port int) result.Outcome {
	target := host
	if s.resolver != nil && !iputil.IsIP(host) {
		ip, err := s.lookup(ctx, host)
		if err != nil {
			gologger.Debug().Msgf("Could not resolve %s: %s\n", host, err)
			return result.Failed(host, port, err)
		}
		target = ip.String()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	conn, err := s.dialer.DialContext(ctx, "tcp", net.JoinHostPort(target, strconv.Itoa(port)))
	if err != nil {
		return classifyDialError(host, port, err)
	}
	_ = conn.Close()
	return result.Outcome{Host: host, Port: port, Status: result.Open}
}

func (s *ConnectStrategy) lookup(ctx context.Context, host string) (net.IP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ip, err := s.resolver.ResolveIP(ctx, host)
	if err != nil {
		return nil, errors.Wrapf(err, "could not resolve %s", host)
	}
	return ip, nil
}

func classifyDialError(host string, port int, err error) result.Outcome {
	outcome := result.Outcome{Host: host, Port: port}
	switch {
	case isTimeout(err):
		outcome.Status = result.Filtered
	case isRefused(err):
		outcome.Status = result.Closed
	default:
		gologger.Debug().Msgf("Connect probe to %s:%d failed: %s\n", host, port, err)
		return result.Failed(host, port, err)
	}
	return outcome
}
