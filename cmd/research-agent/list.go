// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/interpret"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the papers loaded from the folder",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, cfg, err := newAgent(cmd)
	if err != nil {
		return err
	}
	if err := loadPapers(cmd, a, cfg); err != nil {
		return err
	}

	infos := a.Store.List()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	interpret.FormatPaperList(infos, os.Stdout)
	return nil
}

func init() {
	listCmd.Flags().String("folder", "", "folder containing the PDF papers")
	listCmd.Flags().Bool("json", false, "emit the paper list as JSON")

	rootCmd.AddCommand(listCmd)
}
