package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/portprobe/pkg/port"
	"github.com/projectdiscovery/portprobe/pkg/protocol"
	"github.com/projectdiscovery/portprobe/pkg/runner"
)

// DefaultConcurrency is used when the request carries no concurrency parameter
const DefaultConcurrency = runner.DefaultConcurrency

// ParseScanRequest maps query parameters to a scan request
func ParseScanRequest(query url.Values) (runner.ScanRequest, error) {
	req := runner.ScanRequest{Concurrency: DefaultConcurrency}

	hosts, err := ParseHostsParam(query.Get("ips"))
	if err != nil {
		return req, err
	}
	req.Hosts = hosts

	ports, err := ParsePortsParam(query.Get("ports"))
	if err != nil {
		return req, err
	}
	req.Ports = ports

	req.Protocol, err = protocol.ParseProtocol(query.Get("protocol"))
	if err != nil {
		return req, err
	}

	if value := query.Get("concurrency"); value != "" {
		req.Concurrency, err = strconv.Atoi(value)
		if err != nil {
			return req, errors.Wrapf(err, "invalid concurrency %q", value)
		}
	}
	return req, nil
}

// ParseHostsParam splits a comma separated host list, expanding CIDRs
func ParseHostsParam(value string) ([]string, error) {
	hosts, err := runner.ExpandTargets(strings.Split(value, ","))
	if err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return nil, errors.New("no hosts specified")
	}
	return hosts, nil
}

// ParsePortsParam accepts "N", "N-M" or a comma separated list of both
func ParsePortsParam(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, errors.New("no ports specified")
	}
	return port.ParsePortsList(value)
}
