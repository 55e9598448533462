// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/agent"
	"github.com/pdiddy/research-agent/internal/interpret"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive research session",
	Long: `Shell starts an interactive session. The loaded folder persists across
commands, so a folder is read once and then queried repeatedly.

Commands:
  folder <path>   load PDFs from a folder
  list            list the loaded papers
  find <query>    search academic sources online
  analyze <q>     answer a question over the loaded papers
  verify          verify a paragraph's citations (end input with a blank line)
  help            show this list
  quit            leave the shell`,
}

func runShell(cmd *cobra.Command, args []string) error {
	a, cfg, err := newAgent(cmd)
	if err != nil {
		return err
	}

	// A folder given up front is loaded before the first prompt; failures
	// are reported but the shell still starts.
	if folder, _ := cmd.Flags().GetString("folder"); folder != "" {
		cfg.Store.PapersDir = folder
	}
	if cfg.Store.PapersDir != "" {
		shellLoad(cmd, a, cfg.Store.PapersDir)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "research> ",
		HistoryFile:     historyPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("starting shell: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(os.Stdout, "research-agent %s (provider: %s). Type help for commands.\n", version, a.Client.Name())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		name, rest := splitCommand(line)
		switch name {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(os.Stdout, shellCmd.Long)
		case "folder":
			if rest == "" {
				fmt.Fprintln(os.Stderr, "usage: folder <path>")
				continue
			}
			shellLoad(cmd, a, rest)
		case "list":
			infos := a.Store.List()
			if len(infos) == 0 {
				fmt.Fprintln(os.Stdout, "No papers loaded. Use: folder <path>")
				continue
			}
			interpret.FormatPaperList(infos, os.Stdout)
		case "find":
			if rest == "" {
				fmt.Fprintln(os.Stderr, "usage: find <query>")
				continue
			}
			shellFind(cmd, a, rest)
		case "analyze":
			if rest == "" {
				fmt.Fprintln(os.Stderr, "usage: analyze <question>")
				continue
			}
			shellAnalyze(cmd, a, rest)
		case "verify":
			shellVerify(cmd, a, rl)
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q. Type help for commands.\n", name)
		}
	}
}

// splitCommand separates the command word from its argument text.
func splitCommand(line string) (name, rest string) {
	line = strings.TrimSpace(line)
	name, rest, _ = strings.Cut(line, " ")
	return strings.ToLower(name), strings.TrimSpace(rest)
}

func shellLoad(cmd *cobra.Command, a *agent.Agent, dir string) {
	res, err := a.Store.LoadFolder(cmd.Context(), dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	for _, f := range res.Failures {
		fmt.Fprintf(os.Stderr, "Warning: skipped %s: %s\n", f.Path, f.Reason)
	}
	fmt.Fprintf(os.Stdout, "Loaded %d papers from %s\n", res.Loaded, dir)
}

func shellFind(cmd *cobra.Command, a *agent.Agent, query string) {
	fmt.Fprintln(os.Stderr, "Searching...")
	res, err := a.Find(cmd.Context(), query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if !res.Parsed {
		fmt.Fprintln(os.Stdout, res.Raw)
		return
	}
	interpret.FormatSearchTable(res.Entries, os.Stdout)
}

func shellAnalyze(cmd *cobra.Command, a *agent.Agent, question string) {
	fmt.Fprintln(os.Stderr, "Analyzing...")
	res, err := a.Analyze(cmd.Context(), question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	warnDropped(res.Dropped)
	fmt.Fprintln(os.Stdout, res.Answer)
}

// shellVerify collects paragraph lines until a blank line, then runs the
// citation check.
func shellVerify(cmd *cobra.Command, a *agent.Agent, rl *readline.Instance) {
	fmt.Fprintln(os.Stdout, "Enter the paragraph to verify. Finish with a blank line.")
	rl.SetPrompt("... ")
	defer rl.SetPrompt("research> ")

	var lines []string
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(os.Stderr, "verify cancelled")
			return
		}
		if errors.Is(err, io.EOF) || strings.TrimSpace(line) == "" {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		fmt.Fprintln(os.Stderr, "verify cancelled: empty paragraph")
		return
	}

	fmt.Fprintln(os.Stderr, "Verifying citations...")
	res, err := a.VerifyCitations(cmd.Context(), strings.Join(lines, "\n"), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	warnDropped(res.Dropped)
	interpret.FormatReport(res.Report, os.Stdout)
}

// historyPath picks a per-user history file, or none when the home
// directory cannot be determined.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.research-agent_history"
}

func init() {
	shellCmd.RunE = runShell
	shellCmd.Flags().String("folder", "", "folder containing the PDF papers")

	rootCmd.AddCommand(shellCmd)
}
