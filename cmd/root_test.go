package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/http-pprint/internal/app"
	"github.com/oshokin/http-pprint/internal/config"
	"github.com/oshokin/http-pprint/internal/constants"
	"github.com/oshokin/http-pprint/internal/sink"
)

const testBaseConfigContent = `
log_level: "info"
output_style: "styled"
mode: "blocking"
user_agent: "config-agent/1.0"
timeout: "15s"
follow_redirects: true
max_redirects: 5
max_log_length: "64KB"
show_progress: false
`

// newTestCommand creates a command with the same flags as the root command.
func newTestCommand() *cobra.Command {
	testCmd := &cobra.Command{Use: "test"}

	flags := testCmd.Flags()
	flags.StringP("method", "X", "", "HTTP method")
	flags.StringArrayP("header", "H", nil, "request header")
	flags.StringP("data", "d", "", "request body")
	flags.String("mode", "", "retrieval mode")
	flags.String("output-style", "", "output styling")
	flags.Bool("no-follow", false, "do not follow redirects")
	flags.Bool("progress", false, "show progress")

	return testCmd
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	err := os.WriteFile(
		configPath,
		[]byte(testBaseConfigContent),
		constants.DefaultFilePermissions,
	) //nolint:gosec // It's a test file.
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	return cfg
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
func TestFlagOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.ModeBlocking, cfg.ParsedMode)
				assert.Equal(t, sink.ModeStyled, cfg.ParsedOutputStyle)
				assert.True(t, cfg.FollowRedirects)
				assert.False(t, cfg.ShowProgress)
				assert.Equal(t, 15*time.Second, cfg.ParsedTimeout)
				assert.Equal(t, "config-agent/1.0", cfg.UserAgent)
			},
		},
		{
			name:  "mode flag only",
			flags: map[string]string{"mode": "cooperative"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.ModeCooperative, cfg.ParsedMode)
				assert.Equal(t, sink.ModeStyled, cfg.ParsedOutputStyle)
			},
		},
		{
			name:  "output-style flag only",
			flags: map[string]string{"output-style": "plain"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, sink.ModePlain, cfg.ParsedOutputStyle)
				assert.Equal(t, config.ModeBlocking, cfg.ParsedMode)
			},
		},
		{
			name:  "no-follow flag",
			flags: map[string]string{"no-follow": "true"},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.False(t, cfg.FollowRedirects)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"mode":         "cooperative",
				"output-style": "auto",
				"no-follow":    "true",
				"progress":     "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, config.ModeCooperative, cfg.ParsedMode)
				assert.Equal(t, sink.ModeAuto, cfg.ParsedOutputStyle)
				assert.False(t, cfg.FollowRedirects)
				assert.True(t, cfg.ShowProgress)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := loadTestConfig(t)
			testCmd := newTestCommand()

			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue), "failed to set flag %s", flagName)
			}

			require.NoError(t, bindFlagsToConfig(testCmd.Flags(), cfg))

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values are rejected.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		flagName    string
		flagValue   string
		expectedErr error
	}{
		{name: "unknown mode", flagName: "mode", flagValue: "parallel", expectedErr: config.ErrUnknownMode},
		{
			name:        "unknown output style",
			flagName:    "output-style",
			flagValue:   "neon",
			expectedErr: config.ErrUnknownOutputStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := loadTestConfig(t)
			testCmd := newTestCommand()

			require.NoError(t, testCmd.Flags().Set(tt.flagName, tt.flagValue))
			require.ErrorIs(t, bindFlagsToConfig(testCmd.Flags(), cfg), tt.expectedErr)
		})
	}
}

// TestBindFlagsToConfig_EmptyFlagSet tests handling of empty flag set.
func TestBindFlagsToConfig_EmptyFlagSet(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	// Calling with empty flag set should just validate the config.
	emptyFlags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, bindFlagsToConfig(emptyFlags, cfg))
	assert.Equal(t, config.ModeBlocking, cfg.ParsedMode)
}

// TestRequestOptionsFromFlags tests collecting the request options.
func TestRequestOptionsFromFlags(t *testing.T) {
	t.Parallel()

	testCmd := newTestCommand()
	require.NoError(t, testCmd.Flags().Parse([]string{
		"-X", "PATCH",
		"-H", "Accept: application/json",
		"--header", "X-Request-Id: 42, 43",
		"-d", `{"key": "value"}`,
	}))

	opts, err := requestOptionsFromFlags(testCmd.Flags())
	require.NoError(t, err)

	assert.Equal(t, app.RequestOptions{
		Method:  "PATCH",
		Headers: []string{"Accept: application/json", "X-Request-Id: 42, 43"},
		Data:    `{"key": "value"}`,
	}, opts)

	opts, err = requestOptionsFromFlags(pflag.NewFlagSet("empty", pflag.ContinueOnError))
	require.NoError(t, err)
	assert.Equal(t, app.RequestOptions{}, opts)
}
