package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blockberries/merkleberry/config"
)

var proveCmd = &cobra.Command{
	Use:   "prove <namespace> <index>",
	Short: "Generate an inclusion proof",
	Long: `Generate an inclusion proof for the leaf at the given index.

The proof is printed as JSON and can be checked later with 'verify'.

Example:
  merkleberry prove mylog 42 > proof.json`,
	Args: cobra.ExactArgs(2),
	RunE: runProve,
}

func runProve(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	index, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[1], err)
	}

	acc, closeStore, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	proof, err := acc.GenProof(args[0], index)
	if err != nil {
		return fmt.Errorf("generating proof for %s[%d]: %w", args[0], index, err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(proof)
}
