// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/interpret"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that a paragraph's citations are supported by the loaded papers",
	Long: `Verify checks the claims in a written paragraph against the text of the
papers in the folder. The provider answers with an overall verdict
(SUPPORTED / PARTIALLY SUPPORTED / NOT SUPPORTED), a claim-by-claim
analysis with quoted evidence, and recommendations.

The paragraph comes from --paragraph, from --file, or from stdin.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	a, cfg, err := newAgent(cmd)
	if err != nil {
		return err
	}
	if err := loadPapers(cmd, a, cfg); err != nil {
		return err
	}

	paragraph, err := readParagraph(cmd)
	if err != nil {
		return err
	}
	task, _ := cmd.Flags().GetString("task")

	fmt.Fprintln(os.Stderr, "Verifying citations...")

	res, err := a.VerifyCitations(cmd.Context(), paragraph, task)
	if err != nil {
		return err
	}
	warnDropped(res.Dropped)

	interpret.FormatReport(res.Report, os.Stdout)
	return nil
}

// readParagraph resolves the paragraph under verification: the flag, a
// file, or stdin, in that order.
func readParagraph(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("paragraph"); p != "" {
		return p, nil
	}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading paragraph file: %w", err)
		}
		return string(data), nil
	}

	fmt.Fprintln(os.Stderr, "Reading paragraph from stdin (end with EOF)...")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	verifyCmd.Flags().String("folder", "", "folder containing the PDF papers")
	verifyCmd.Flags().String("paragraph", "", "paragraph to verify")
	verifyCmd.Flags().String("file", "", "file containing the paragraph to verify")
	verifyCmd.Flags().String("task", "", "extra verification instruction passed to the provider")

	rootCmd.AddCommand(verifyCmd)
}
