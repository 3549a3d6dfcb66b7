package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blockberries/merkleberry/accumulator"
)

var verifyProofFile string

var verifyCmd = &cobra.Command{
	Use:   "verify <root>",
	Short: "Verify an inclusion proof",
	Long: `Verify an inclusion proof against a claimed root hash.

The proof JSON is read from --proof or from stdin. Verification is
purely local and needs no access to the store.

Exits with status 0 if the proof verifies, 1 otherwise.

Example:
  merkleberry verify --proof proof.json dGhlcm9vdA
  merkleberry prove mylog 42 | merkleberry verify dGhlcm9vdA`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyProofFile, "proof", "", "proof file (defaults to stdin)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if verifyProofFile != "" {
		data, err = os.ReadFile(verifyProofFile)
		if err != nil {
			return fmt.Errorf("reading proof file: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading proof from stdin: %w", err)
		}
	}

	var proof accumulator.Proof
	if err := json.Unmarshal(data, &proof); err != nil {
		return fmt.Errorf("parsing proof: %w", err)
	}

	result := accumulator.VerifyProof(&proof, args[0])
	if !result.OK {
		fmt.Fprintf(cmd.OutOrStdout(), "INVALID: %s\n", result.Reason)
		os.Exit(1)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "OK")
	return nil
}
