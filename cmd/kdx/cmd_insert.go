package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nvandessel/kdindex/internal/index"
	"github.com/nvandessel/kdindex/internal/store"
)

func newInsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert X,Y,...",
		Short: "Insert one point into the index",
		Long: `Insert adds a single point as a new leaf, updates the SQLite
catalog, and rewrites the serialized index. The tree is not rebalanced;
rebuild from the catalog if heavy insertion has skewed it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			point, err := parsePoint(args[0])
			if err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				id = uuid.NewString()
			}

			tree, err := index.LoadFile(cfg.IndexPath, cfg.Dims)
			if err != nil {
				return err
			}
			if err := tree.Insert(cmd.Context(), id, point); err != nil {
				return err
			}

			if err := cfg.EnsureDataDir(); err != nil {
				return err
			}
			catalog, err := store.NewSQLitePointStore(cfg.CatalogPath)
			if err != nil {
				return err
			}
			defer catalog.Close()
			if err := catalog.Put(cmd.Context(), store.Point{ID: id, Vec: point}); err != nil {
				return err
			}

			if err := index.SaveFile(cmd.Context(), tree, cfg.IndexPath); err != nil {
				return err
			}

			result := map[string]any{"id": id, "points": tree.Len()}
			output(cmd, result, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "inserted %s (%d points indexed)\n", id, tree.Len())
			})
			return nil
		},
	}

	cmd.Flags().String("id", "", "Identifier for the point (default: a generated UUID)")
	return cmd
}
