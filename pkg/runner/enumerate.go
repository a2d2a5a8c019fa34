package runner

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/portprobe/pkg/port"
	"github.com/projectdiscovery/portprobe/pkg/protocol"
	"github.com/projectdiscovery/portprobe/pkg/result"
)

// RunEnumeration runs a single scan built from the command line options and
// writes the result to stdout or the output file
func (r *Runner) RunEnumeration(ctx context.Context) error {
	hosts, err := r.options.loadTargets()
	if err != nil {
		return &ConfigurationError{Err: err}
	}
	portsSpec := r.options.Ports
	if len(portsSpec) == 0 {
		portsSpec = []string{DefaultPorts}
	}
	ports, err := port.ParsePortsSlice(portsSpec)
	if err != nil {
		return &ConfigurationError{Err: err}
	}
	p, err := protocol.ParseProtocol(r.options.Protocol)
	if err != nil {
		return &ConfigurationError{Err: err}
	}

	req := ScanRequest{
		CorrelationID: uuid.NewString(),
		Hosts:         hosts,
		Ports:         ports,
		Protocol:      p,
		Concurrency:   r.options.Concurrency,
	}
	scanResult, err := r.Scan(ctx, req)
	if err != nil {
		return err
	}
	return r.handleOutput(scanResult)
}

func (r *Runner) handleOutput(scanResult result.ScanResult) error {
	var writer io.Writer = os.Stdout
	if r.options.Output != "" {
		file, err := os.Create(r.options.Output)
		if err != nil {
			return errors.Wrapf(err, "could not create file %s", r.options.Output)
		}
		defer file.Close()
		writer = file
		gologger.Info().Msgf("Writing %d hosts to %s\n", scanResult.Len(), r.options.Output)
	}

	var err error
	switch {
	case r.options.JSON:
		err = WriteJSONOutput(scanResult, writer)
	case r.options.YAML:
		err = WriteYAMLOutput(scanResult, writer)
	default:
		err = WriteHostOutput(scanResult, writer, r.options.NoColor || r.options.Output != "")
	}
	return errors.Wrap(err, "could not write results")
}
