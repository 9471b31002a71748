package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

// launcher drives rofi or dmenu in dmenu mode. rofi reports the selected
// row index; dmenu echoes the label, so labels are made unique for it.
type launcher struct {
	command string
	rofi    bool
}

func newRofi() *launcher  { return &launcher{command: "rofi", rofi: true} }
func newDmenu() *launcher { return &launcher{command: "dmenu"} }

func (l *launcher) Name() string { return l.command }

func (l *launcher) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, errors.New("palette: no items to show")
	}
	rows := l.rows(items)

	cmd := exec.Command(l.command, l.args(prompt, items)...)
	cmd.Stdin = strings.NewReader(l.input(rows))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", l.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", l.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}

	item, err := l.parse(selection, rows)
	if err != nil {
		return Item{}, err
	}
	if item.IsHeader {
		return Item{}, ErrCancelled
	}
	return item, nil
}

// rows returns the items as displayed. dmenu cannot skip headers, so they
// are dropped for it.
func (l *launcher) rows(items []Item) []Item {
	if l.rofi {
		return items
	}
	out := make([]Item, 0, len(items))
	seen := make(map[string]int)
	for _, it := range items {
		if it.IsHeader {
			continue
		}
		label := sanitize(it.Label)
		if n := seen[label]; n > 0 {
			it.Label = fmt.Sprintf("%s (%d)", label, n+1)
		}
		seen[label]++
		out = append(out, it)
	}
	return out
}

func (l *launcher) args(prompt string, items []Item) []string {
	if !l.rofi {
		args := []string{"-i", "-l", "20"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		return args
	}

	args := []string{"-dmenu", "-i", "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
	if prompt != "" {
		args = append(args, "-p", prompt)
	}
	for i, it := range items {
		if !it.IsHeader {
			args = append(args, "-selected-row", strconv.Itoa(i))
			break
		}
	}
	return args
}

func (l *launcher) input(rows []Item) string {
	lines := make([]string, 0, len(rows))
	for _, it := range rows {
		lines = append(lines, l.formatRow(it))
	}
	return strings.Join(lines, "\n")
}

// formatRow renders one line. rofi row properties follow a single NUL as
// \x1f-separated key/value pairs.
func (l *launcher) formatRow(it Item) string {
	label := sanitize(it.Label)
	if !l.rofi {
		return label
	}

	label = html.EscapeString(label)
	if it.IsHeader {
		label = "<b>" + label + "</b>"
	}

	var attrs []string
	if it.IsHeader {
		attrs = append(attrs, "nonselectable", "true")
	}
	if it.Icon != "" {
		attrs = append(attrs, "icon", sanitizeField(it.Icon))
	}
	if it.Meta != "" {
		attrs = append(attrs, "meta", sanitizeField(it.Meta))
	}
	if len(attrs) == 0 {
		return label
	}
	return label + "\x00" + strings.Join(attrs, "\x1f")
}

func (l *launcher) parse(selection string, rows []Item) (Item, error) {
	if l.rofi {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(rows) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return rows[idx], nil
		}
	}
	for _, it := range rows {
		if sanitize(it.Label) == selection {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitize(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitize(value)
}

// isCancelExit reports the exit codes launchers use for "no selection"
// (1) and Ctrl+C (130).
func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	}
	return false
}
