package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/ipc"
	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/shortcut"
	"github.com/1broseidon/galaxy/internal/tiling"
)

func printMonitorsTable(w io.Writer, monitors []geometry.Monitor) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Name", "Bounds", "Work Area")
	for i, m := range monitors {
		table.Append(strconv.Itoa(i), m.Name, m.Bounds.String(), m.Work.String())
	}
	table.Render()
}

func printActionsTable(w io.Writer, actions []ipc.ActionInfo) {
	table := tablewriter.NewWriter(w)
	table.Header("Action", "Gutter")
	for _, a := range actions {
		gutter := ""
		if a.Gutter {
			gutter = "yes"
		}
		table.Append(a.Name, gutter)
	}
	table.Render()
}

func printShortcutsTable(w io.Writer, entries []registry.Entry) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Action", "Shortcut", "Keys", "Active")
	for _, e := range entries {
		keys := e.Normalized
		if c, err := shortcut.Parse(e.Shortcut); err == nil {
			keys = c.Display()
		}
		active := "no"
		if e.Active {
			active = "yes"
		}
		table.Append(e.ID, e.Name, e.Shortcut, keys, active)
	}
	table.Render()
}

func printResult(w io.Writer, r *tiling.Result) {
	if !r.Applied {
		fmt.Fprintf(w, "%s: nothing to do\n", r.Name)
		return
	}
	successColor.Fprintf(w, "✓ %s\n", r.Name)
	keyColor.Fprint(w, "Window:  ")
	fmt.Fprintf(w, "0x%x\n", uint32(r.Window))
	keyColor.Fprint(w, "Before:  ")
	fmt.Fprintln(w, r.Before.String())
	keyColor.Fprint(w, "After:   ")
	fmt.Fprintln(w, r.Placement.Rect().String())
	if r.Current != r.Target {
		keyColor.Fprint(w, "Monitor: ")
		fmt.Fprintf(w, "%d -> %d\n", r.Current, r.Target)
	}
}

func printReloadReport(w io.Writer, r *registry.ReloadReport) {
	successColor.Fprintln(w, "✓ Shortcuts reloaded")
	printIDs(w, "Added", r.Added)
	printIDs(w, "Removed", r.Removed)
	printIDs(w, "Changed", r.Changed)
	for _, f := range r.Failed {
		errorColor.Fprint(w, "Failed:  ")
		fmt.Fprintf(w, "%s (%s): %s\n", f.ID, f.Shortcut, f.Err)
	}
}

func printIDs(w io.Writer, label string, ids []string) {
	if len(ids) == 0 {
		return
	}
	keyColor.Fprintf(w, "%-8s ", label+":")
	for i, id := range ids {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprint(w, id)
	}
	fmt.Fprintln(w)
}
