// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/devtoolbox/internal/config"
	"github.com/jeranaias/devtoolbox/internal/logging"
	"github.com/jeranaias/devtoolbox/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds persistent flags and what PersistentPreRunE builds
// from them.
type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger

	stdout io.Writer
	stderr io.Writer
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)

	ctx, cancel := signalAwareContext(context.Background())
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		DisplayError(os.Stderr, err)
		return ExitFailure
	}
	return ExitSuccess
}

// NewRootCmd builds the command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{
		logger: zap.NewNop(),
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Terminal toolbox: GitHub org and repo research, Unicode inspection, JWT decoding",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: <user config dir>/devtoolbox/config.toml)")
	root.PersistentFlags().StringVar(&opts.envFile, "env", "", "file holding GITHUB_TOKEN (default: .env)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newImportCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

// setup loads the configuration, applies flag overrides and opens the log.
func (o *rootOptions) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return &StartupError{Stage: "config", Err: err}
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return &StartupError{Stage: "config", Err: err}
		}
	}

	logger, err := logging.New(logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return &StartupError{Stage: "log", Err: err}
	}

	styles.SetDefault(styles.NewTheme(cfg.UI.Theme))
	o.cfg = cfg
	o.logger = logger
	return nil
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
