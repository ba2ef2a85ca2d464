package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/kdindex/internal/index"
	"github.com/nvandessel/kdindex/internal/kdtree"
	"github.com/nvandessel/kdindex/internal/pointset"
	"github.com/nvandessel/kdindex/internal/store"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a balanced index from a point batch and save it",
		Long: `Build reads a batch of points, constructs a balanced k-d tree, and
writes the serialized index to the configured index path.

Sources:
  --from FILE        JSON Lines ({"id": ..., "point": [...]} per line)
  --from FILE --format arrow
                     Arrow IPC stream (id: utf8, point: fixed_size_list<float32>)
  --from-catalog     every point in the SQLite catalog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetString("from")
			format, _ := cmd.Flags().GetString("format")
			fromCatalog, _ := cmd.Flags().GetBool("from-catalog")

			var batch *pointset.Batch
			switch {
			case fromCatalog:
				batch, err = catalogBatch(cmd, cfg.CatalogPath)
			case from != "":
				batch, err = fileBatch(from, format)
			default:
				return fmt.Errorf("one of --from or --from-catalog is required")
			}
			if err != nil {
				return err
			}

			tree, err := kdtree.Build(batch.IDs, batch.Points)
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}
			if cfg.Dims != 0 && tree.Dims() != cfg.Dims {
				return fmt.Errorf("batch has %d dimensions, config expects %d", tree.Dims(), cfg.Dims)
			}

			if err := cfg.EnsureDataDir(); err != nil {
				return err
			}
			if err := index.SaveFile(cmd.Context(), tree, cfg.IndexPath); err != nil {
				return err
			}

			result := map[string]any{
				"points": tree.Len(),
				"height": tree.Height(),
				"dims":   tree.Dims(),
				"path":   cfg.IndexPath,
			}
			output(cmd, result, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "indexed %d points (%d dims, height %d) -> %s\n",
					tree.Len(), tree.Dims(), tree.Height(), cfg.IndexPath)
			})
			return nil
		},
	}

	cmd.Flags().String("from", "", "Point batch file to index")
	cmd.Flags().String("format", "jsonl", "Batch file format: jsonl or arrow")
	cmd.Flags().Bool("from-catalog", false, "Index every point in the SQLite catalog")
	return cmd
}

func fileBatch(path, format string) (*pointset.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case "jsonl":
		return pointset.ReadJSONL(f)
	case "arrow":
		return pointset.ReadArrowIPC(f)
	default:
		return nil, fmt.Errorf("unknown format %q (want jsonl or arrow)", format)
	}
}

func catalogBatch(cmd *cobra.Command, path string) (*pointset.Batch, error) {
	catalog, err := store.NewSQLitePointStore(path)
	if err != nil {
		return nil, err
	}
	defer catalog.Close()

	points, err := catalog.All(cmd.Context())
	if err != nil {
		return nil, err
	}
	batch := &pointset.Batch{}
	for _, p := range points {
		batch.IDs = append(batch.IDs, p.ID)
		batch.Points = append(batch.Points, p.Vec)
	}
	return batch, nil
}
