package runner

import (
	"fmt"
	"strings"

	"github.com/projectdiscovery/portprobe/pkg/port"
	"github.com/projectdiscovery/portprobe/pkg/protocol"
	"go.uber.org/multierr"
)

// ScanRequest describes a single scan
type ScanRequest struct {
	CorrelationID string
	Hosts         []string
	Ports         []int
	Protocol      protocol.Protocol
	Concurrency   int
}

// validate collects every problem of the request at once
func (req ScanRequest) validate() error {
	var errs error

	if len(req.Hosts) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("no hosts specified"))
	}
	for _, host := range req.Hosts {
		if strings.TrimSpace(host) == "" {
			errs = multierr.Append(errs, fmt.Errorf("empty host"))
			break
		}
	}
	if len(req.Ports) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("no ports specified"))
	}
	for _, p := range req.Ports {
		if !port.IsValid(p) {
			errs = multierr.Append(errs, fmt.Errorf("invalid port %d", p))
		}
	}
	if !req.Protocol.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("unknown protocol %s", req.Protocol))
	}
	if req.Concurrency < 1 {
		errs = multierr.Append(errs, fmt.Errorf("concurrency must be at least 1, got %d", req.Concurrency))
	}

	if errs != nil {
		return &ConfigurationError{Err: errs}
	}
	return nil
}
