package runner

import (
	"fmt"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/portprobe/pkg/port"
	"github.com/projectdiscovery/portprobe/pkg/protocol"
	"go.uber.org/multierr"
)

// ValidateOptions validates the command line options passed
func (options *Options) ValidateOptions() error {
	var errs error

	if options.Serve == "" {
		if len(options.Host) == 0 && options.HostsFile == "" && !options.Stdin {
			errs = multierr.Append(errs, fmt.Errorf("no input list provided"))
		}
		if len(options.Ports) == 0 {
			options.Ports = []string{DefaultPorts}
		}
		if _, err := port.ParsePortsSlice(options.Ports); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("could not parse ports: %w", err))
		}
	}
	if _, err := protocol.ParseProtocol(options.Protocol); err != nil {
		errs = multierr.Append(errs, err)
	}
	if options.Verbose && options.Silent {
		errs = multierr.Append(errs, fmt.Errorf("both verbose and silent mode specified"))
	}
	if options.JSON && options.YAML {
		errs = multierr.Append(errs, fmt.Errorf("json and yaml output are mutually exclusive"))
	}
	if options.Concurrency < 1 {
		errs = multierr.Append(errs, fmt.Errorf("concurrency must be at least 1"))
	}
	if options.Timeout <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("timeout must be positive"))
	}
	if options.Rate < 0 {
		errs = multierr.Append(errs, fmt.Errorf("rate cannot be negative"))
	}
	return errs
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.JSONLog {
		gologger.DefaultLogger.SetFormatter(&formatter.JSON{})
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}
