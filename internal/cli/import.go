// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/devtoolbox/internal/importer"
	"github.com/jeranaias/devtoolbox/internal/storage"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var chars, blocks string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the Unicode reference data into the cache and exit",
		Long: `Loads the UnicodeData-style character file and the Blocks-style range file
into the cache database. Nothing is written when reference data is already
present. A malformed line aborts the import and leaves the cache unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			seeds := seedsFrom(opts.cfg)
			if chars != "" {
				seeds.CharsPath = chars
			}
			if blocks != "" {
				seeds.BlocksPath = blocks
			}

			store, err := storage.Open(ctx, opts.cfg.CacheDBPath)
			if err != nil {
				return &StartupError{Stage: "cache", Err: err}
			}
			defer store.Close()

			res, err := importer.Spawn(ctx, store, seeds, opts.logger).Wait(ctx)
			if err != nil {
				return err
			}

			if res.Skipped {
				n, err := store.CountCodepoints(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(opts.stdout, "Reference data already present (%d codepoints), nothing imported\n", n)
				return nil
			}
			fmt.Fprintf(opts.stdout, "Imported %d codepoints and %d blocks in %s\n",
				res.Codepoints, res.Blocks, res.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&chars, "chars", "", "character file (default: unicode_data_path from config)")
	cmd.Flags().StringVar(&blocks, "blocks", "", "block range file (default: blocks_path from config)")
	return cmd
}
