package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blockberries/merkleberry/config"
)

var (
	initDataDir  string
	initBackend  string
	initOverride bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new log",
	Long: `Initialize a new Merkleberry log with a configuration file and data directory.

This command creates:
  - config.toml: Log configuration
  - data/: Data directory for the storage backend

Example:
  merkleberry init --backend leveldb --data-dir /var/lib/merkleberry`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDataDir, "data-dir", ".", "directory for configuration and data")
	initCmd.Flags().StringVar(&initBackend, "backend", config.BackendLevelDB, "storage backend (memory, leveldb, badgerdb)")
	initCmd.Flags().BoolVar(&initOverride, "force", false, "override existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	dataDir := initDataDir
	if dataDir == "" {
		dataDir = "."
	}

	// Check if config already exists
	configPath := filepath.Join(dataDir, "config.toml")
	if _, err := os.Stat(configPath); err == nil && !initOverride {
		return fmt.Errorf("config.toml already exists; use --force to override")
	}

	// Create default config
	cfg := config.DefaultConfig()
	cfg.Store.Backend = initBackend
	cfg.Store.Path = filepath.Join(dataDir, "data", "log")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Create directories
	dirs := []string{
		dataDir,
		filepath.Join(dataDir, "data"),
	}
	if cfg.Store.Backend != config.BackendMemory {
		dirs = append(dirs, cfg.Store.Path)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	// Write config file
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("Initialized Merkleberry log\n")
	fmt.Printf("  Backend:   %s\n", cfg.Store.Backend)
	fmt.Printf("  Config:    %s\n", configPath)
	fmt.Printf("  Data dir:  %s\n", filepath.Join(dataDir, "data"))

	return nil
}
