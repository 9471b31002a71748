package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/shortcut"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

// EditShortcut prompts for a binding and a new shortcut, then applies it
// through the daemon. preset preselects a binding id when non-empty.
func EditShortcut(client Client, preset string) (*registry.Entry, error) {
	if err := requireTerminal(); err != nil {
		return nil, err
	}

	entries, err := client.ListShortcuts()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("daemon reports no shortcuts")
	}

	id := preset
	if id == "" {
		id = entries[0].ID
	}
	value := currentShortcut(entries, id)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("id").
				Title("Action").
				Description("Binding to change").
				Options(bindingOptions(entries)...).
				Value(&id),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("shortcut").
				Title("Shortcut").
				DescriptionFunc(func() string {
					return "Currently " + currentShortcut(entries, id)
				}, &id).
				Placeholder("ctrl+alt+left").
				Validate(validateShortcut).
				Value(&value),
		),
	).WithShowHelp(true).WithShowErrors(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}

	return client.UpdateShortcut(id, strings.TrimSpace(value))
}

func bindingOptions(entries []registry.Entry) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", e.Name, e.Shortcut), e.ID))
	}
	return opts
}

func currentShortcut(entries []registry.Entry, id string) string {
	for _, e := range entries {
		if e.ID == id {
			return e.Shortcut
		}
	}
	return ""
}

func validateShortcut(s string) error {
	_, err := shortcut.Parse(strings.TrimSpace(s))
	return err
}
