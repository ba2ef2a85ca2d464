package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/kdindex/internal/index"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Report index size, height, and dimensionality",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tree, err := index.LoadFile(cfg.IndexPath, cfg.Dims)
			if err != nil {
				return err
			}

			result := map[string]any{
				"points": tree.Len(),
				"height": tree.Height(),
				"dims":   tree.Dims(),
				"path":   cfg.IndexPath,
			}
			output(cmd, result, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d points, %d dims, height %d\n",
					cfg.IndexPath, tree.Len(), tree.Dims(), tree.Height())
			})
			return nil
		},
	}
}
