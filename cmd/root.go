package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/http-pprint/internal/app"
	"github.com/oshokin/http-pprint/internal/config"
	"github.com/oshokin/http-pprint/internal/logger"
	"github.com/oshokin/http-pprint/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "http-pprint [flags] {urls}",
		Short: "Send HTTP requests and pretty-print the exchanges.",
		Long: `HTTP Pretty Print sends a request to every given URL and prints the exchange
in a readable form:
- The request line, headers and body
- The status line, headers and decoded body of the response
- Every step of a redirect chain, when the request was redirected

JSON and XML bodies are re-indented, binary bodies are replaced with a placeholder.
Responses can be buffered up front (blocking mode) or read only when they are printed
(cooperative mode).`,
		Version:       version.Short(),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       initConfig,
		RunE: func(cmd *cobra.Command, urls []string) error {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				return fmt.Errorf("failed to parse flags: %w", err)
			}

			logger.SetLevel(appConfig.ParsedLogLevel)

			opts, err := requestOptionsFromFlags(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to parse flags: %w", err)
			}

			return app.ExecuteRootCommand(cmd.Context(), appConfig, urls, opts)
		},
	}
)

// Execute executes the root command and exits with a non-zero code when it fails.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	// Requests observe ctx, so a signal interrupts the current URL and skips the rest.
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Errorf(ctx, "%v", err)
		_ = logger.Logger().Sync()

		stop()
		os.Exit(1) //nolint:gocritic // Deferred calls were run by hand above.
	}
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.SetVersionTemplate("{{.Name}} " + version.Full() + "\n")

	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"method",
		"X",
		"",
		"HTTP method (default is GET, or POST when --data is set).")

	rootCmdFlags.StringArrayP(
		"header",
		"H",
		nil,
		"request header in 'Name: value' form, can be repeated.")

	rootCmdFlags.StringP(
		"data",
		"d",
		"",
		"request body.")

	rootCmdFlags.String(
		"mode",
		"",
		"response retrieval mode: blocking or cooperative.")

	rootCmdFlags.String(
		"output-style",
		"",
		"output styling: auto, plain or styled.")

	rootCmdFlags.Bool(
		"no-follow",
		false,
		"do not follow redirects.")

	rootCmdFlags.Bool(
		"progress",
		false,
		"show a progress bar while cooperative response bodies are retrieved.")
}

func initConfig(_ *cobra.Command, _ []string) error {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	return nil
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("mode"); flag != nil && flag.Changed {
		cfg.Mode, _ = flags.GetString("mode")
	}

	if flag := flags.Lookup("output-style"); flag != nil && flag.Changed {
		cfg.OutputStyle, _ = flags.GetString("output-style")
	}

	if flag := flags.Lookup("no-follow"); flag != nil && flag.Changed {
		noFollow, _ := flags.GetBool("no-follow")
		cfg.FollowRedirects = !noFollow
	}

	if flag := flags.Lookup("progress"); flag != nil && flag.Changed {
		cfg.ShowProgress, _ = flags.GetBool("progress")
	}

	return config.ValidateConfig(cfg)
}

func requestOptionsFromFlags(flags *pflag.FlagSet) (app.RequestOptions, error) {
	var (
		opts app.RequestOptions
		err  error
	)

	if flags.Lookup("method") != nil {
		if opts.Method, err = flags.GetString("method"); err != nil {
			return opts, err
		}
	}

	if flags.Lookup("header") != nil {
		if opts.Headers, err = flags.GetStringArray("header"); err != nil {
			return opts, err
		}
	}

	if flags.Lookup("data") != nil {
		if opts.Data, err = flags.GetString("data"); err != nil {
			return opts, err
		}
	}

	return opts, nil
}
