package runner

import (
	"bufio"
	"io"
	"net"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/mapcidr"
	fileutil "github.com/projectdiscovery/utils/file"
	iputil "github.com/projectdiscovery/utils/ip"
)

// MaxCIDRHosts caps the number of addresses a single CIDR may expand to
const MaxCIDRHosts = 65536

// ExpandTargets trims the targets, drops empty entries and expands CIDRs
// into their addresses. Names are kept as is; strategies resolve them.
func ExpandTargets(targets []string) ([]string, error) {
	var hosts []string
	for _, target := range targets {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		if !iputil.IsCIDR(target) {
			hosts = append(hosts, target)
			continue
		}

		_, network, err := net.ParseCIDR(target)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid cidr %s", target)
		}
		if mapcidr.AddressCountIpnet(network) > MaxCIDRHosts {
			return nil, errors.Errorf("cidr %s is too large", target)
		}
		ipStream, err := mapcidr.IPAddressesAsStream(network.String())
		if err != nil {
			return nil, errors.Wrapf(err, "invalid cidr %s", target)
		}
		for ip := range ipStream {
			hosts = append(hosts, ip)
		}
	}
	return hosts, nil
}

// loadTargets gathers targets from the flags, the hosts file and stdin
func (options *Options) loadTargets() ([]string, error) {
	targets := append([]string{}, options.Host...)

	if options.HostsFile != "" {
		lines, err := fileutil.ReadFile(options.HostsFile)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", options.HostsFile)
		}
		for line := range lines {
			targets = append(targets, line)
		}
	}

	if options.Stdin {
		stdinTargets, err := readTargets(os.Stdin)
		if err != nil {
			return nil, err
		}
		targets = append(targets, stdinTargets...)
	}

	hosts, err := ExpandTargets(targets)
	if err != nil {
		return nil, err
	}
	excluded, err := parseExcludedHosts(options)
	if err != nil {
		return nil, err
	}
	hosts, err = excludeHosts(hosts, excluded)
	if err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return nil, errors.New("no targets specified")
	}
	return hosts, nil
}

func readTargets(reader io.Reader) ([]string, error) {
	var targets []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		targets = append(targets, scanner.Text())
	}
	return targets, scanner.Err()
}
