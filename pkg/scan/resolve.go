package scan

import (
	"context"
	"net"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/projectdiscovery/dnsx/libs/dnsx"
	"github.com/projectdiscovery/gologger"
	iputil "github.com/projectdiscovery/utils/ip"
)

// IPResolver turns a target into the address raw packets are sent to
type IPResolver interface {
	ResolveIP(ctx context.Context, host string) (net.IP, error)
}

// HostResolver resolves with dnsx and falls back to the system resolver for
// split dns setups
type HostResolver struct {
	dnsclient *dnsx.DNSX
}

// NewHostResolver creates a resolver. A dnsx setup failure leaves only the
// system resolver in place.
func NewHostResolver() *HostResolver {
	dnsOptions := dnsx.DefaultOptions
	dnsOptions.Hostsfile = true
	dnsOptions.QuestionTypes = []uint16{dns.TypeA, dns.TypeAAAA}

	r := &HostResolver{}
	dnsclient, err := dnsx.New(dnsOptions)
	if err != nil {
		gologger.Debug().Msgf("Could not create dnsx client, using system resolver: %s\n", err)
		return r
	}
	r.dnsclient = dnsclient
	return r
}

// ResolveIP returns the first IPv4 address of host, or the first IPv6 one
func (r *HostResolver) ResolveIP(ctx context.Context, host string) (net.IP, error) {
	if iputil.IsIP(host) {
		return net.ParseIP(host), nil
	}

	if r.dnsclient != nil {
		dnsData, err := r.dnsclient.QueryMultiple(host)
		if err == nil && dnsData != nil {
			for _, records := range [][]string{dnsData.A, dnsData.AAAA} {
				for _, record := range records {
					if ip := net.ParseIP(record); ip != nil {
						return ip, nil
					}
				}
			}
		}
	}

	ipAddrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, errors.Wrapf(err, "could not resolve %s", host)
	}
	var fallback net.IP
	for _, ipAddr := range ipAddrs {
		if ipAddr.IP.To4() != nil {
			return ipAddr.IP, nil
		}
		if fallback == nil {
			fallback = ipAddr.IP
		}
	}
	if fallback == nil {
		return nil, errors.Errorf("no IP addresses found for host: %s", host)
	}
	return fallback, nil
}
