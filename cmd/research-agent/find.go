// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/interpret"
)

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search academic sources for papers matching a query",
	Long: `Find asks the provider to search academic databases (Google Scholar,
arXiv, PubMed, Semantic Scholar, ...) for papers matching the query.
With the Anthropic provider the hosted web-search tool is used; the
OpenAI provider answers from model knowledge alone.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	a, _, err := newAgent(cmd)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	fmt.Fprintf(os.Stderr, "Searching for papers with %s...\n", a.Client.Name())

	res, err := a.Find(cmd.Context(), query)
	if err != nil {
		return err
	}

	if !res.Parsed {
		// Unstructured provider output: show it as-is rather than failing.
		fmt.Fprintln(os.Stdout, res.Raw)
		return nil
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	yamlOut, _ := cmd.Flags().GetBool("yaml")
	switch {
	case jsonOut:
		return interpret.FormatSearchJSON(res.Entries, os.Stdout)
	case yamlOut:
		return interpret.FormatSearchYAML(res.Entries, os.Stdout)
	default:
		interpret.FormatSearchTable(res.Entries, os.Stdout)
		return nil
	}
}

func init() {
	findCmd.Flags().Bool("json", false, "output results as JSON")
	findCmd.Flags().Bool("yaml", false, "output results as YAML")

	rootCmd.AddCommand(findCmd)
}
