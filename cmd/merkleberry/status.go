package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blockberries/merkleberry/config"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status <namespace>",
	Short: "Show the state of a log",
	Long: `Show the leaf count and current root of the log for a namespace.

Example:
  merkleberry status mylog
  merkleberry status mylog --json`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
}

// LogStatus is the status output for a namespace.
type LogStatus struct {
	Namespace string `json:"namespace"`
	LeafCount int64  `json:"leafCount"`
	Root      string `json:"root"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	acc, closeStore, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	namespace := args[0]

	count, err := acc.LeafCount(namespace)
	if err != nil {
		return fmt.Errorf("reading leaf count: %w", err)
	}
	root, err := acc.Root(namespace)
	if err != nil {
		return fmt.Errorf("reading root: %w", err)
	}

	status := LogStatus{
		Namespace: namespace,
		LeafCount: count,
		Root:      root,
	}

	if statusJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	fmt.Println("Log Status")
	fmt.Println("==========")
	fmt.Printf("Namespace:   %s\n", status.Namespace)
	fmt.Printf("Leaf Count:  %d\n", status.LeafCount)
	if status.Root == "" {
		fmt.Printf("Root:        (empty log)\n")
	} else {
		fmt.Printf("Root:        %s\n", status.Root)
	}

	return nil
}
