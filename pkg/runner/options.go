package runner

import (
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/portprobe/pkg/probes"
	"github.com/projectdiscovery/portprobe/pkg/protocol"
	"github.com/projectdiscovery/portprobe/pkg/result"
	"github.com/projectdiscovery/portprobe/pkg/scan"
	fileutil "github.com/projectdiscovery/utils/file"
)

// StrategyFactory builds the probe strategy for a scan
type StrategyFactory func(p protocol.Protocol, options *scan.Options) (scan.Strategy, error)

// Options contains the configuration options for the engine and the
// command line front end
type Options struct {
	Host             goflags.StringSlice // Host is the list of hosts to probe
	HostsFile        string              // HostsFile is a file with one target per line
	Stdin            bool                // Stdin specifies whether stdin input was given to the process
	ExcludeHosts     string              // ExcludeHosts is a comma separated list of hosts or cidrs to skip
	ExcludeHostsFile string              // ExcludeHostsFile holds hosts or cidrs to skip, one per line
	Ports            goflags.StringSlice // Ports is the list of ports or port ranges
	Protocol         string              // Protocol is tcp-connect, tcp-syn or udp
	Concurrency      int                 // Concurrency is the default bound of in-flight probes
	Timeout          time.Duration       // Timeout is the per probe timeout
	Rate             int                 // Rate limits probes per second, 0 disables it
	Proxy            string              // Proxy is a socks5 proxy used by connect probes
	ProxyAuth        string              // ProxyAuth is user:pass for the socks5 proxy
	Seed             int64               // Seed of the work order shuffle, 0 picks one per scan

	JSON    bool   // JSON writes the result as json
	YAML    bool   // YAML writes the result as yaml
	Output  string // Output is the file to write the result to
	Serve   string // Serve starts the http api on this address instead of scanning
	UIDir   string // UIDir is a static directory mounted at / by the http api
	Verbose bool
	Debug   bool
	Silent  bool
	NoColor bool
	JSONLog bool // JSONLog switches log lines to json

	// Catalog overrides the udp payload catalog
	Catalog *probes.Catalog
	// Services overrides the service name table
	Services result.ServiceResolver
	// Strategy overrides how probe strategies are built
	Strategy StrategyFactory
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`portprobe classifies tcp and udp ports of a fixed set of hosts.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&options.Host, "host", "", nil, "hosts to probe (comma-separated, CIDRs are expanded)", goflags.NormalizedStringSliceOptions),
		flagSet.StringVarP(&options.HostsFile, "list", "l", "", "file containing hosts to probe"),
		flagSet.StringVarP(&options.ExcludeHosts, "exclude-hosts", "eh", "", "hosts or cidrs to exclude from the scan (comma-separated)"),
		flagSet.StringVarP(&options.ExcludeHostsFile, "exclude-file", "ef", "", "file containing hosts or cidrs to exclude"),
		flagSet.StringSliceVarP(&options.Ports, "port", "p", nil, "ports to probe (e.g. 22,80,1000-2000)", goflags.NormalizedStringSliceOptions),
	)

	flagSet.CreateGroup("scan", "Scan",
		flagSet.StringVarP(&options.Protocol, "protocol", "pr", "tcp-connect", "probe protocol (tcp-connect,tcp-syn,udp)"),
		flagSet.IntVarP(&options.Concurrency, "concurrency", "c", DefaultConcurrency, "maximum number of in-flight probes"),
		flagSet.DurationVarP(&options.Timeout, "timeout", "", DefaultTimeout, "timeout of a single probe"),
		flagSet.IntVar(&options.Rate, "rate", 0, "maximum probes per second (0 = unlimited)"),
		flagSet.StringVar(&options.Proxy, "proxy", "", "socks5 proxy (ip[:port]) for tcp-connect probes"),
		flagSet.StringVar(&options.ProxyAuth, "proxy-auth", "", "socks5 proxy authentication (username:password)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "file to write output to"),
		flagSet.BoolVarP(&options.JSON, "json", "j", false, "write output in JSON format"),
		flagSet.BoolVar(&options.YAML, "yaml", false, "write output in YAML format"),
	)

	flagSet.CreateGroup("server", "Server",
		flagSet.StringVar(&options.Serve, "serve", "", "serve the http api on the given address (e.g. :8080)"),
		flagSet.StringVar(&options.UIDir, "ui-dir", "", "static directory served at / with -serve"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&options.Debug, "debug", false, "display debugging information"),
		flagSet.BoolVar(&options.Silent, "silent", false, "display only results in output"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable colors in output"),
		flagSet.BoolVarP(&options.JSONLog, "json-log", "jl", false, "write log lines in JSON format"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not parse flags: %s\n", err)
	}

	// Check if stdin pipe was given
	options.Stdin = fileutil.HasStdin()

	options.configureOutput()
	showBanner()

	if err := options.ValidateOptions(); err != nil {
		gologger.Fatal().Msgf("Program exiting: %s\n", err)
	}

	return options
}
