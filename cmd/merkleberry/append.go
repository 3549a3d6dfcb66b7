package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blockberries/merkleberry/config"
)

var appendCmd = &cobra.Command{
	Use:   "append <namespace> [payload]",
	Short: "Append a payload to a log",
	Long: `Append a payload to the log for the given namespace.

If no payload argument is given, the payload is read from stdin.
The result (index, leaf hash and new root) is printed as JSON.

Example:
  merkleberry append mylog "hello world"
  cat record.bin | merkleberry append mylog`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAppend,
}

func runAppend(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var payload []byte
	if len(args) == 2 {
		payload = []byte(args[1])
	} else {
		payload, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading payload from stdin: %w", err)
		}
	}

	acc, closeStore, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := acc.Append(args[0], payload)
	if err != nil {
		return fmt.Errorf("appending to %s: %w", args[0], err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
