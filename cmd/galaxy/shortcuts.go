package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/galaxy/internal/shortcut"
	"github.com/1broseidon/galaxy/internal/tui"
)

var shortcutsCmd = &cobra.Command{
	Use:     "shortcuts",
	Aliases: []string{"shortcut"},
	Short:   "Inspect and rebind shortcuts",
}

var shortcutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bindings and whether each is registered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := newClient().ListShortcuts()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), entries)
		}
		printShortcutsTable(cmd.OutOrStdout(), entries)
		return nil
	},
}

var shortcutsSetCmd = &cobra.Command{
	Use:   "set <id> <shortcut>",
	Short: "Rebind one action",
	Long: `Replaces the shortcut for one binding. The old combination stays
registered if the new one cannot be grabbed.

  galaxy shortcuts set leftHalf "Super+Alt+Left"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := shortcut.Parse(args[1]); err != nil {
			return err
		}
		entry, err := newClient().UpdateShortcut(args[0], args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, entry)
		}
		successColor.Fprintf(out, "✓ %s bound to %s\n", entry.ID, entry.Normalized)
		return nil
	},
}

var shortcutsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Rebind an action interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preset := ""
		if len(args) == 1 {
			preset = args[0]
		}
		entry, err := tui.EditShortcut(newClient(), preset)
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		successColor.Fprintf(cmd.OutOrStdout(), "✓ %s bound to %s\n", entry.ID, entry.Normalized)
		return nil
	},
}

var shortcutsReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-read the shortcut document and re-register changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := newClient().ReloadShortcuts()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), report)
		}
		printReloadReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <shortcut>...",
	Short: "Print the canonical form of shortcut strings",
	Long: `Prints the canonical form used to compare shortcuts, and whether each
one is a valid binding. Does not need the daemon.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNormalize(cmd, args)
	},
}

type normalizeResult struct {
	Input        string `json:"input"`
	Normalized   string `json:"normalized"`
	Registration string `json:"registration"`
	Display      string `json:"display,omitempty"`
	Error        string `json:"error,omitempty"`
}

func normalizeAll(args []string) []normalizeResult {
	out := make([]normalizeResult, 0, len(args))
	for _, a := range args {
		r := normalizeResult{
			Input:        a,
			Normalized:   shortcut.Normalize(a),
			Registration: shortcut.Translate(a),
		}
		if c, err := shortcut.Parse(a); err != nil {
			r.Error = err.Error()
		} else {
			r.Display = c.Display()
		}
		out = append(out, r)
	}
	return out
}

func runNormalize(cmd *cobra.Command, args []string) error {
	results := normalizeAll(args)
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, results)
	}
	for _, r := range results {
		fmt.Fprint(out, r.Normalized)
		if r.Error != "" {
			errorColor.Fprintf(out, "  (%s)", r.Error)
		} else {
			dimColor.Fprintf(out, "  %s", r.Display)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func init() {
	shortcutsCmd.AddCommand(shortcutsListCmd)
	shortcutsCmd.AddCommand(shortcutsSetCmd)
	shortcutsCmd.AddCommand(shortcutsEditCmd)
	shortcutsCmd.AddCommand(shortcutsReloadCmd)
}
