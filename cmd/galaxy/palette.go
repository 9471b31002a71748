package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/1broseidon/galaxy/internal/palette"
)

var paletteBackend string

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Pick an action from rofi or dmenu and apply it",
	Long: `Lists every action in rofi or dmenu together with its current shortcut
and applies the chosen one to the window that had focus. Bind it to a key in
your window manager for a searchable alternative to the shortcuts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfig()
		if err != nil {
			return err
		}
		backend, err := palette.NewBackend(paletteBackend)
		if err != nil {
			return err
		}

		client := newClient()
		entries, err := client.ListShortcuts()
		if err != nil {
			return err
		}

		action, err := palette.Pick(backend, entries, res.Config.AlmostMaximizeGutter)
		if errors.Is(err, palette.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		result, err := client.RunAction(action.Kind.String(), action.Gutter)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), result)
		}
		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	paletteCmd.Flags().StringVar(&paletteBackend, "backend", "auto", "Launcher to use: auto, rofi, dmenu")
	rootCmd.AddCommand(paletteCmd)
}
