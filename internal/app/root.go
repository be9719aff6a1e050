package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/oshokin/http-pprint/internal/client"
	"github.com/oshokin/http-pprint/internal/config"
	"github.com/oshokin/http-pprint/internal/logger"
	"github.com/oshokin/http-pprint/internal/pprint"
	"github.com/oshokin/http-pprint/internal/sink"
)

// Runner executes and prints exchanges one URL at a time.
type Runner struct {
	cfg     *config.Config
	client  client.Client
	printer *pprint.Printer
}

// ErrSomeURLsFailed indicates that at least one URL could not be printed.
var ErrSomeURLsFailed = errors.New("some URLs failed")

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, c client.Client, printer *pprint.Printer) *Runner {
	return &Runner{
		cfg:     cfg,
		client:  c,
		printer: printer,
	}
}

// ExecuteRootCommand is the entry point for the application.
// It prints the response summary of every URL to stdout and reports whether any of them failed.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, urls []string, opts RequestOptions) error {
	runner := NewRunner(
		cfg,
		client.NewClient(cfg),
		pprint.NewPrinter(sink.New(os.Stdout, cfg.ParsedOutputStyle)))

	return runner.Run(ctx, urls, opts)
}

// ExecuteConfigInitCommand writes the default configuration to path.
func ExecuteConfigInitCommand(ctx context.Context, path string) error {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}

	logger.Infof(ctx, "Default configuration written to '%s'", path)

	return nil
}

// Run processes urls in order. A failed URL is logged and the next one proceeds.
func (r *Runner) Run(ctx context.Context, urls []string, opts RequestOptions) error {
	var failed int

	for _, rawURL := range urls {
		if ctx.Err() != nil {
			logger.Warnf(ctx, "Interrupted, skipping '%s'", rawURL)

			failed++

			continue
		}

		if err := r.runOne(ctx, rawURL, opts); err != nil {
			logger.Errorf(ctx, "Failed to print '%s': %v", rawURL, err)

			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrSomeURLsFailed, failed, len(urls))
	}

	return nil
}

func (r *Runner) runOne(ctx context.Context, rawURL string, opts RequestOptions) error {
	req, err := BuildRequest(ctx, rawURL, opts)
	if err != nil {
		return err
	}

	logger.Debugf(ctx, "Sending %s %s in %s mode", req.Method, req.URL, r.cfg.ParsedMode)

	if r.cfg.ParsedMode == config.ModeCooperative {
		return r.runCooperative(ctx, req)
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return err
	}

	return r.printer.PrintResponseSummary(resp)
}

func (r *Runner) runCooperative(ctx context.Context, req *http.Request) error {
	resp, err := r.client.DoAsync(ctx, req)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := resp.Close(); closeErr != nil {
			logger.Debugf(ctx, "Failed to release response body: %v", closeErr)
		}
	}()

	return r.printer.PrintResponseSummaryContext(ctx, resp)
}
