package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvandessel/kdindex/internal/index"
)

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query X,Y,...",
		Short: "Find the stored point nearest to the given coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			point, err := parsePoint(args[0])
			if err != nil {
				return err
			}

			tree, err := index.LoadFile(cfg.IndexPath, cfg.Dims)
			if err != nil {
				return err
			}

			res, err := tree.Nearest(cmd.Context(), point)
			if err != nil {
				return err
			}

			output(cmd, res, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %v (distance² %g)\n", res.ID, res.Point, res.Distance)
			})
			return nil
		},
	}
}

// parsePoint turns "1.5,2,-3" into coordinates.
func parsePoint(s string) ([]float32, error) {
	parts := strings.Split(s, ",")
	point := make([]float32, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", part, err)
		}
		point = append(point, float32(v))
	}
	return point, nil
}
