package runner

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/projectdiscovery/blackrock"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/portprobe/pkg/probes"
	"github.com/projectdiscovery/portprobe/pkg/protocol"
	"github.com/projectdiscovery/portprobe/pkg/result"
	"github.com/projectdiscovery/portprobe/pkg/scan"
	"github.com/projectdiscovery/portprobe/pkg/services"
	"github.com/projectdiscovery/ratelimit"
	sliceutil "github.com/projectdiscovery/utils/slice"
	"github.com/remeh/sizedwaitgroup"
)

// Runner is the probing engine. A single runner can serve concurrent scans.
type Runner struct {
	options  *Options
	services result.ServiceResolver
	strategy StrategyFactory
}

type workUnit struct {
	host string
	port int
}

// New creates a runner, filling in defaults for unset options
func New(options *Options) (*Runner, error) {
	if options == nil {
		options = &Options{}
	}
	if options.Concurrency <= 0 {
		options.Concurrency = DefaultConcurrency
	}
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	if options.Rate < 0 {
		return nil, &ConfigurationError{Err: errors.New("rate cannot be negative")}
	}
	if options.Catalog == nil {
		options.Catalog = probes.Default()
	}

	r := &Runner{
		options:  options,
		services: options.Services,
		strategy: options.Strategy,
	}
	if r.services == nil {
		r.services = services.Default()
	}
	r.services = &serviceLabels{services: r.services, catalog: options.Catalog}
	if r.strategy == nil {
		r.strategy = scan.NewStrategy
	}
	return r, nil
}

// Scan probes every (host, port) pair of req once and returns the aggregated
// result. Invalid requests and missing privileges fail before any probe is
// sent. A cancelled ctx stops dispatching and returns ctx.Err().
func (r *Runner) Scan(ctx context.Context, req ScanRequest) (result.ScanResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	hosts := sliceutil.Dedupe(req.Hosts)
	ports := sliceutil.Dedupe(req.Ports)

	strategy, err := r.strategy(req.Protocol, &scan.Options{
		Timeout:   r.options.Timeout,
		Proxy:     r.options.Proxy,
		ProxyAuth: r.options.ProxyAuth,
		Catalog:   r.options.Catalog,
	})
	if err != nil {
		if errors.Is(err, scan.ErrNeedPrivileges) {
			return nil, &CapabilityError{Err: err}
		}
		return nil, &ConfigurationError{Err: err}
	}
	if closer, ok := strategy.(io.Closer); ok {
		defer closer.Close()
	}

	gologger.Info().Str("correlation_id", req.CorrelationID).Msgf("Starting %s scan of %d hosts and %d ports (concurrency %d)\n", req.Protocol, len(hosts), len(ports), req.Concurrency)
	start := time.Now()

	aggregator := result.NewAggregator(req.Protocol, r.services, hosts...)
	outcomes := make(chan result.Outcome, req.Concurrency)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for outcome := range outcomes {
			if outcome.Status == result.Error {
				gologger.Debug().Str("correlation_id", req.CorrelationID).Msgf("Probe %s:%d failed: %s\n", outcome.Host, outcome.Port, outcome.Detail)
			}
			aggregator.Add(outcome)
		}
	}()

	err = r.dispatch(ctx, strategy, hosts, ports, req.Concurrency, outcomes)
	close(outcomes)
	<-collected
	if err != nil {
		gologger.Warning().Str("correlation_id", req.CorrelationID).Msgf("Scan aborted: %s\n", err)
		return nil, err
	}

	gologger.Info().Str("correlation_id", req.CorrelationID).Msgf("Scan finished in %s (%d probes)\n", time.Since(start).Round(time.Millisecond), aggregator.Seen())
	return aggregator.Result(), nil
}

// dispatch walks the host x port space in shuffled order and keeps at most
// concurrency probes in flight. It returns once every started probe is done.
func (r *Runner) dispatch(ctx context.Context, strategy scan.Strategy, hosts []string, ports []int, concurrency int, outcomes chan<- result.Outcome) error {
	var limiter *ratelimit.Limiter
	if r.options.Rate > 0 {
		limiter = ratelimit.New(context.Background(), uint(r.options.Rate), time.Second)
		defer limiter.Stop()
	}

	seed := r.options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	portsCount := int64(len(ports))
	total := int64(len(hosts)) * portsCount
	wg := sizedwaitgroup.New(concurrency)
	b := blackrock.New(total, seed)

	var err error
	for index := int64(0); index < total; index++ {
		if err = ctx.Err(); err != nil {
			break
		}
		if limiter != nil {
			limiter.Take()
		}

		x := b.Shuffle(index)
		unit := workUnit{host: hosts[x/portsCount], port: ports[x%portsCount]}

		if err = wg.AddWithContext(ctx); err != nil {
			break
		}
		go func(unit workUnit) {
			defer wg.Done()
			outcomes <- strategy.Probe(ctx, unit.host, unit.port)
		}(unit)
	}
	wg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return err
}

// serviceLabels falls back to the udp catalog probe name when the service
// table has no entry for a udp port
type serviceLabels struct {
	services result.ServiceResolver
	catalog  *probes.Catalog
}

func (s *serviceLabels) Resolve(port int, transport string) (string, bool) {
	if name, ok := s.services.Resolve(port, transport); ok {
		return name, true
	}
	if transport == protocol.UDP.Transport() {
		if name := s.catalog.Name(port); name != "" {
			return name, true
		}
	}
	return "", false
}
