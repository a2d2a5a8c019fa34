package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/projectdiscovery/fdmax/autofdmax"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/portprobe/pkg/api"
	"github.com/projectdiscovery/portprobe/pkg/runner"
)

func main() {
	// Parse the command line flags
	options := runner.ParseOptions()

	portprobeRunner, err := runner.New(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	// Setup graceful exits
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if options.Serve != "" {
		if err := serve(ctx, options, portprobeRunner); err != nil {
			gologger.Fatal().Msgf("Could not serve api: %s\n", err)
		}
		return
	}

	if err := portprobeRunner.RunEnumeration(ctx); err != nil {
		gologger.Fatal().Msgf("Could not run enumeration: %s\n", err)
	}
}

func serve(ctx context.Context, options *runner.Options, scanner api.Scanner) error {
	server := &http.Server{
		Addr:              options.Serve,
		Handler:           api.NewHandler(scanner, options.UIDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		gologger.Info().Msgf("Shutting down api server\n")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	gologger.Info().Msgf("Serving api on %s\n", options.Serve)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
