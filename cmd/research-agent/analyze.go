// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "Answer a question over a folder of local PDF papers",
	Long: `Analyze extracts text from the PDFs in the papers folder, sends it to
the provider together with the question, and prints the answer with
per-claim attribution to paper identifiers.

Papers are loaded fresh for the invocation; use the shell for a session
that keeps a folder loaded across questions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, cfg, err := newAgent(cmd)
	if err != nil {
		return err
	}
	if err := loadPapers(cmd, a, cfg); err != nil {
		return err
	}

	question := strings.Join(args, " ")
	fmt.Fprintln(os.Stderr, "Reading and analyzing papers...")

	res, err := a.Analyze(cmd.Context(), question)
	if err != nil {
		return err
	}
	warnDropped(res.Dropped)

	fmt.Fprintln(os.Stdout, res.Answer)
	return nil
}

func init() {
	analyzeCmd.Flags().String("folder", "", "folder containing the PDF papers")

	rootCmd.AddCommand(analyzeCmd)
}
