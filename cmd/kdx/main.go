package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/kdindex/internal/config"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "kdx",
		Short: "kdx - exact nearest-neighbor point index",
		Long: `kdx maintains a balanced k-d tree over fixed-dimension points.

It builds the index from point batches (JSON Lines, Arrow IPC, or the
SQLite catalog), answers exact nearest-neighbor queries, accepts
incremental insertions, and persists the whole structure to disk.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")
	rootCmd.PersistentFlags().String("config", "", "Path to a kdx.yaml configuration file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newBuildCmd(),
		newQueryCmd(),
		newInsertCmd(),
		newStatsCmd(),
		newServeCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "kdx version %s\n", version)
			}
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the kdx data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDataDir(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", cfg.DataDir)
			return nil
		},
	}
}

// loadConfig resolves the configuration for a command: the --config
// file when given, defaults otherwise.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// output prints v as JSON when --json is set, or via human otherwise.
func output(cmd *cobra.Command, v any, human func()) {
	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		json.NewEncoder(cmd.OutOrStdout()).Encode(v)
		return
	}
	human()
}
