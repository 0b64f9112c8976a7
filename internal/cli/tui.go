// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/devtoolbox/internal/app"
	"github.com/jeranaias/devtoolbox/internal/config"
	"github.com/jeranaias/devtoolbox/internal/export"
	"github.com/jeranaias/devtoolbox/internal/github"
	"github.com/jeranaias/devtoolbox/internal/importer"
	"github.com/jeranaias/devtoolbox/internal/secrets"
	"github.com/jeranaias/devtoolbox/internal/storage"
	"github.com/jeranaias/devtoolbox/internal/tools"
	"github.com/jeranaias/devtoolbox/internal/tools/jwtdecoder"
	"github.com/jeranaias/devtoolbox/internal/tools/orgsearch"
	"github.com/jeranaias/devtoolbox/internal/tools/repoexplorer"
	"github.com/jeranaias/devtoolbox/internal/tools/unicodeinspector"
)

// runTUI performs the startup sequence and runs the event loop. Every error
// before the loop starts is fatal.
func runTUI(ctx context.Context, opts *rootOptions) error {
	if err := RequiresTTY(); err != nil {
		return err
	}
	cfg, logger := opts.cfg, opts.logger

	configDir, _ := config.ConfigDir()
	sec, err := secrets.Load(opts.envFile, configDir)
	if err != nil {
		se := &StartupError{Stage: "credentials", Err: err}
		if errors.Is(err, secrets.ErrMissingToken) {
			se.Hint = secrets.Help(configDir)
		}
		return se
	}
	defer sec.Destroy()

	store, err := storage.Open(ctx, cfg.CacheDBPath)
	if err != nil {
		return &StartupError{Stage: "cache", Err: err}
	}
	defer store.Close()

	imp := importer.Spawn(ctx, store, seedsFrom(cfg), logger)
	// The import is never cancelled; the store stays open until it ends.
	defer func() { <-imp.Done() }()

	registry, err := buildRegistry(cfg, store, imp, sec, logger)
	if err != nil {
		return &StartupError{Stage: "tools", Err: err}
	}
	dispatcher := tools.NewDispatcher(registry, tools.BindingsFromConfig(cfg.Keys), logger)

	logger.Info("STARTUP",
		zap.String("version", Version),
		zap.String("cache", store.Path()),
		zap.String("token_source", sec.Source()),
		zap.Strings("tools", registry.Names()))

	m := app.New(ctx, dispatcher, app.Options{Import: imp, Logger: logger})
	err = app.Run(m)
	logger.Info("SHUTDOWN", zap.Error(err))
	return err
}

func seedsFrom(cfg *config.Config) importer.Seeds {
	return importer.Seeds{CharsPath: cfg.UnicodeDataPath, BlocksPath: cfg.BlocksPath}
}

// buildRegistry creates the tools in tab order and seals the registry.
func buildRegistry(cfg *config.Config, store *storage.Store, imp *importer.Handle, sec *secrets.Secrets, logger *zap.Logger) (*tools.Registry, error) {
	client, err := github.NewClient(&github.ClientConfig{
		BaseURL:           cfg.GitHubAPIBaseURL,
		Timeout:           time.Duration(cfg.Network.TimeoutSecs) * time.Second,
		UserAgent:         cfg.Network.UserAgent,
		RequestsPerSecond: cfg.Network.RequestsPerSecond,
		Burst:             cfg.Network.Burst,
		TokenSource:       sec,
	})
	if err != nil {
		return nil, err
	}
	exportOpts := &export.Options{OutputDir: cfg.Export.Dir, Format: cfg.Export.Format}

	registry, err := tools.NewRegistry(
		orgsearch.New(client, exportOpts, logger),
		repoexplorer.New(client, store, exportOpts, logger),
		unicodeinspector.New(store, imp, exportOpts, logger),
		jwtdecoder.New(),
	)
	if err != nil {
		return nil, err
	}
	registry.Seal()
	return registry, nil
}
