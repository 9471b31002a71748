package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/1broseidon/galaxy/internal/tiling"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := newClient().GetStatus()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, status)
		}

		successColor.Fprintln(out, "✓ Daemon running")
		keyColor.Fprint(out, "PID:        ")
		fmt.Fprintln(out, status.PID)
		keyColor.Fprint(out, "Uptime:     ")
		fmt.Fprintln(out, (time.Duration(status.UptimeSeconds) * time.Second).String())
		keyColor.Fprint(out, "Shortcuts:  ")
		fmt.Fprintf(out, "%d/%d registered\n", status.ActiveShortcuts, status.Shortcuts)
		keyColor.Fprint(out, "Monitors:   ")
		fmt.Fprintln(out, status.Monitors)
		keyColor.Fprint(out, "Shortcuts file: ")
		fmt.Fprintln(out, status.ShortcutsFile)
		return nil
	},
}

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List monitors with their work areas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		monitors, err := newClient().GetMonitors()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), monitors)
		}
		printMonitorsTable(cmd.OutOrStdout(), monitors)
		return nil
	},
}

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List window actions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := newClient().ListActions()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), actions)
		}
		printActionsTable(cmd.OutOrStdout(), actions)
		return nil
	},
}

var actionGutter int

var actionCmd = &cobra.Command{
	Use:   "action <name>",
	Short: "Apply a window action to the focused window",
	Long: `Applies one action to the currently focused window, for example:

  galaxy action left-half
  galaxy action maximize --gutter 32`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := tiling.ParseAction(args[0], actionGutter); err != nil {
			return err
		}
		res, err := newClient().RunAction(args[0], actionGutter)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), res)
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	actionCmd.Flags().IntVar(&actionGutter, "gutter", 0, "Margin in unscaled pixels (maximize only)")
}
